package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appsuite-be/internal/models"
	"appsuite-be/internal/service"
)

type RegexController struct {
	regexService service.RegexService
}

func NewRegexController(regexService service.RegexService) *RegexController {
	return &RegexController{regexService: regexService}
}

// Test handles POST /api/regex/test
func (rc *RegexController) Test(c *gin.Context) {
	var req models.RegexTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	matches, err := rc.regexService.Test(req.Pattern, req.TestString, req.Flags)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RegexTestResponse{
		Success:      true,
		TotalMatches: len(matches),
		Matches:      matches,
		Pattern:      req.Pattern,
		Flags:        req.Flags,
	})
}
