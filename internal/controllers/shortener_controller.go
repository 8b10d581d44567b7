package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"appsuite-be/internal/entities"
	"appsuite-be/internal/middleware"
	"appsuite-be/internal/models"
	"appsuite-be/internal/service"
)

// ShortenerController serves both shortener variants. Requests that passed the auth middleware
// act on the caller's mappings, all others on the anonymous ones.
type ShortenerController struct {
	urlService service.URLService
	baseURL    string
}

func NewShortenerController(urlService service.URLService, baseURL string) *ShortenerController {
	return &ShortenerController{
		urlService: urlService,
		baseURL:    baseURL,
	}
}

func owner(c *gin.Context) *string {
	if id, ok := middleware.UserID(c); ok {
		return &id
	}
	return nil
}

func (sc *ShortenerController) shortURL(code string) string {
	return sc.baseURL + "/s/" + code
}

func (sc *ShortenerController) record(url *entities.URL) models.URLRecord {
	return models.URLRecord{
		ID:          url.ID,
		OriginalURL: url.OriginalURL,
		ShortCode:   url.ShortCode,
		ShortURL:    sc.shortURL(url.ShortCode),
		CreatedAt:   url.CreatedAt,
		ClickCount:  url.ClickCount,
	}
}

// Shorten handles POST /api/shorten and /api/v1/shorten
func (sc *ShortenerController) Shorten(c *gin.Context) {
	var req models.ShortenRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequestBody(c)
		return
	}

	url, created, err := sc.urlService.GetOrCreate(c.Request.Context(), owner(c), req.URL)
	if err != nil {
		respondError(c, err)
		return
	}

	status, message := http.StatusOK, "URL already shortened"
	if created {
		status, message = http.StatusCreated, "New shortened URL created"
	}
	c.JSON(status, models.ShortenResponse{
		Success:      true,
		ShortenedURL: sc.shortURL(url.ShortCode),
		ShortCode:    url.ShortCode,
		Message:      message,
	})
}

// History handles GET /api/history and /api/v1/history, newest first
func (sc *ShortenerController) History(c *gin.Context) {
	urls, err := sc.urlService.History(c.Request.Context(), owner(c))
	if err != nil {
		respondError(c, err)
		return
	}

	records := make([]models.URLRecord, len(urls))
	for i, url := range urls {
		records[i] = sc.record(url)
	}
	c.JSON(http.StatusOK, models.HistoryResponse{Success: true, Data: records})
}

// Delete handles DELETE /api/delete/:id and /api/v1/delete/:id
func (sc *ShortenerController) Delete(c *gin.Context) {
	if err := sc.urlService.Delete(c.Request.Context(), owner(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "URL deleted successfully"})
}

// ClearHistory handles DELETE /api/clear-history and /api/v1/clear-history
func (sc *ShortenerController) ClearHistory(c *gin.Context) {
	n, err := sc.urlService.ClearHistory(c.Request.Context(), owner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ClearHistoryResponse{Success: true, Message: "All history cleared", Deleted: n})
}

// Redirect handles GET /s/:shortCode
func (sc *ShortenerController) Redirect(c *gin.Context) {
	url, err := sc.urlService.Resolve(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url.OriginalURL)
}

// Preview handles GET /api/v1/redirect/:shortCode - returns the target without counting a click
func (sc *ShortenerController) Preview(c *gin.Context) {
	originalURL, err := sc.urlService.Preview(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PreviewResponse{OriginalURL: originalURL})
}

// Stats handles GET /api/v1/url/:shortCode
func (sc *ShortenerController) Stats(c *gin.Context) {
	url, err := sc.urlService.Stats(c.Request.Context(), owner(c), c.Param("shortCode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sc.record(url))
}

// Analytics handles GET /api/v1/url/:shortCode/analytics?hours=
func (sc *ShortenerController) Analytics(c *gin.Context) {
	shortCode := c.Param("shortCode")

	hours := 24
	if hoursStr := c.Query("hours"); hoursStr != "" {
		if parsedHours, err := strconv.Atoi(hoursStr); err == nil && parsedHours > 0 {
			hours = parsedHours
		}
	}

	buckets, err := sc.urlService.Analytics(c.Request.Context(), owner(c), shortCode, hours)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AnalyticsResponse{
		Success:   true,
		ShortCode: shortCode,
		Hours:     hours,
		Data:      buckets,
	})
}
