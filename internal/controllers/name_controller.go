package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appsuite-be/internal/service"
)

type NameController struct {
	nameService service.NameService
}

func NewNameController(nameService service.NameService) *NameController {
	return &NameController{nameService: nameService}
}

// Analyze handles GET /api/names?name=
func (nc *NameController) Analyze(c *gin.Context) {
	analysis, err := nc.nameService.Analyze(c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}
