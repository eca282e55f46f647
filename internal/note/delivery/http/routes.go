package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	notes := rg.Group("/notes")
	{
		notes.POST("/screen-ready", h.ScreenReady)
		notes.POST("/refresh", h.Refresh)
		notes.POST("/more", h.More)
		notes.GET("", h.List)
		notes.GET("/stream", h.Stream)
		notes.GET("/notifications", h.Notifications)
		notes.POST("", h.Save)
		notes.PUT("/:key", h.Edit)
		notes.POST("/:key/cancel-edit", h.CancelEdit)
		notes.DELETE("/:key", h.Remove)
		notes.GET("/:key/detail", h.Detail)
	}
}
