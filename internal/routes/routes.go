package routes

import (
	"backend/internal/handlers"
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, contactHandler *handlers.ContactHandler) {
	contactRoutes := NewContactRoutes(contactHandler)
	contactRoutes.RegisterRoutes(&router.RouterGroup)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
