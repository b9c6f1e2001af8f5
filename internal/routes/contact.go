package routes

import (
	"backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

type ContactRoutes struct {
	handler *handlers.ContactHandler
}

func NewContactRoutes(handler *handlers.ContactHandler) *ContactRoutes {
	return &ContactRoutes{handler: handler}
}

// RegisterRoutes mounts the paths the contacts frontend calls.
func (r *ContactRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/contacts", r.handler.ListContacts)
	router.POST("/create_contact", r.handler.CreateContact)
	router.PATCH("/update_contact/:id", r.handler.UpdateContact)
	router.DELETE("/delete_contact/:id", r.handler.DeleteContact)
}
