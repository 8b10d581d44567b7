package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"appsuite-be/internal/models"
	"appsuite-be/internal/service"
)

type NoteController struct {
	notes *service.NoteStore
}

func NewNoteController(notes *service.NoteStore) *NoteController {
	return &NoteController{notes: notes}
}

func notesOK(c *gin.Context, notes []string) {
	c.JSON(http.StatusOK, models.NotesResponse{Success: true, Notes: notes})
}

// List handles GET /api/notes
func (nc *NoteController) List(c *gin.Context) {
	notesOK(c, nc.notes.List())
}

// Add handles POST /api/notes (JSON or form). Blank notes are ignored.
func (nc *NoteController) Add(c *gin.Context) {
	var req models.NoteRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequestBody(c)
		return
	}
	notesOK(c, nc.notes.Add(req.Note))
}

// Delete handles DELETE /api/notes/:index. Indexes outside the list change nothing.
func (nc *NoteController) Delete(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
		return
	}
	notesOK(c, nc.notes.Delete(index))
}

// Clear handles DELETE /api/notes
func (nc *NoteController) Clear(c *gin.Context) {
	notesOK(c, nc.notes.Clear())
}
