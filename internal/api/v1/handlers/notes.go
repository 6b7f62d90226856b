package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"echonote/internal/api/middleware"
	"echonote/internal/api/v1/dto"
	"echonote/internal/api/v1/services"
)

// NoteHandler serves the /notes endpoints.
type NoteHandler struct {
	service *services.NoteService
}

func NewNoteHandler(service *services.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// List handles GET /notes
func (h *NoteHandler) List(c *gin.Context) {
	resp, err := h.service.List()
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Rename handles PATCH /notes/:id
func (h *NoteHandler) Rename(c *gin.Context) {
	var req dto.RenameNoteRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	resp, err := h.service.Rename(c.Param("id"), req.Title)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
