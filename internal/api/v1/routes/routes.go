package routes

import (
	"github.com/gin-gonic/gin"

	"echonote/internal/api/v1/handlers"
	"echonote/internal/api/v1/services"
)

// Setup wires the v1 endpoints onto the given route group.
func Setup(v1 *gin.RouterGroup, noteService *services.NoteService) {
	noteHandler := handlers.NewNoteHandler(noteService)

	notes := v1.Group("/notes")
	{
		notes.GET("", noteHandler.List)
		notes.GET("/:id", noteHandler.Get)
		notes.PATCH("/:id", noteHandler.Rename)
		notes.DELETE("/:id", noteHandler.Delete)
	}
}
