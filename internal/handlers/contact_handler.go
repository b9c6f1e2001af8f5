package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/responses"
	"backend/internal/services"
)

// ContactService is what the handler needs from services.ContactService.
type ContactService interface {
	List(ctx context.Context) ([]models.Contact, error)
	Create(ctx context.Context, req services.CreateContactRequest) (*models.Contact, error)
	Update(ctx context.Context, id uint, req services.UpdateContactRequest) (*models.Contact, error)
	Delete(ctx context.Context, id uint) error
}

type ContactHandler struct {
	contactService ContactService
}

func NewContactHandler(contactService ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ListContacts handles GET /contacts
func (h *ContactHandler) ListContacts(c *gin.Context) {
	contacts, err := h.contactService.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve contacts")
		return
	}

	responses.Collection(c, "contacts", contacts)
}

// CreateContact handles POST /create_contact
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req services.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "You must include a first name, last name and a valid email")
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create contact")
		return
	}

	responses.Success(c, http.StatusCreated, contact, "Contact created!")
}

// UpdateContact handles PATCH /update_contact/:id
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	var req services.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Failed to update contact")
		return
	}

	responses.Success(c, http.StatusOK, contact, "Contact updated.")
}

// DeleteContact handles DELETE /delete_contact/:id
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete contact")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Contact deleted!")
}

// fail maps service errors onto status codes.
func (h *ContactHandler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrContactNotFound):
		responses.Fail(c, http.StatusNotFound, err, "Contact not found")
	case errors.Is(err, services.ErrInvalidContact):
		responses.Fail(c, http.StatusBadRequest, err, "First name, last name and email cannot be blank")
	case errors.Is(err, services.ErrEmailTaken):
		responses.Fail(c, http.StatusConflict, err, "A contact with this email already exists")
	default:
		_ = c.Error(err)
		responses.Fail(c, http.StatusInternalServerError, err, fallback)
	}
}

func contactID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid contact id")
		return 0, false
	}
	return uint(id), true
}
