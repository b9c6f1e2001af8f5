package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"backend/internal/models"
	"backend/internal/repositories"
)

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrEmailTaken      = errors.New("email already in use")
	ErrInvalidContact  = errors.New("invalid contact")
)

// ContactCache is the optional list cache in front of the repository.
type ContactCache interface {
	GetContacts(ctx context.Context) ([]models.Contact, bool, error)
	SetContacts(ctx context.Context, contacts []models.Contact) error
	InvalidateContacts(ctx context.Context) error
}

type ContactService struct {
	contactRepo *repositories.ContactRepository
	cache       ContactCache
	log         *logrus.Logger
}

// NewContactService builds the service. cache may be nil.
func NewContactService(contactRepo *repositories.ContactRepository, cache ContactCache, log *logrus.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		cache:       cache,
		log:         log,
	}
}

type CreateContactRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

// UpdateContactRequest carries a partial update; nil fields are left alone.
type UpdateContactRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
}

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	if s.cache != nil {
		contacts, ok, err := s.cache.GetContacts(ctx)
		if err != nil {
			s.log.WithError(err).Warn("contact cache read failed")
		} else if ok {
			return contacts, nil
		}
	}

	contacts, err := s.contactRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetContacts(ctx, contacts); err != nil {
			s.log.WithError(err).Warn("contact cache write failed")
		}
	}
	return contacts, nil
}

func (s *ContactService) Create(ctx context.Context, req CreateContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	contact.Prepare()
	if contact.FirstName == "" || contact.LastName == "" || contact.Email == "" {
		return nil, fmt.Errorf("%w: first name, last name and email are required", ErrInvalidContact)
	}

	existing, err := s.contactRepo.FindByEmail(ctx, contact.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	s.invalidate(ctx)
	s.log.WithField("contact_id", contact.ID).Info("contact created")
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, id uint, req UpdateContactRequest) (*models.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load contact: %w", err)
	}
	if contact == nil {
		return nil, ErrContactNotFound
	}

	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	contact.Prepare()
	if contact.FirstName == "" || contact.LastName == "" || contact.Email == "" {
		return nil, fmt.Errorf("%w: fields cannot be blank", ErrInvalidContact)
	}

	if req.Email != nil {
		other, err := s.contactRepo.FindByEmail(ctx, contact.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to look up email: %w", err)
		}
		if other != nil && other.ID != contact.ID {
			return nil, ErrEmailTaken
		}
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	s.invalidate(ctx)
	s.log.WithField("contact_id", contact.ID).Info("contact updated")
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.contactRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if !deleted {
		return ErrContactNotFound
	}

	s.invalidate(ctx)
	s.log.WithField("contact_id", id).Info("contact deleted")
	return nil
}

func (s *ContactService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateContacts(ctx); err != nil {
		s.log.WithError(err).Warn("contact cache invalidation failed")
	}
}

