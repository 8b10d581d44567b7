package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"appsuite-be/internal/models"
	"appsuite-be/internal/service"
)

const qrCodeSize = 256

type QRCodeController struct {
	urlService service.URLService
	baseURL    string
}

func NewQRCodeController(urlService service.URLService, baseURL string) *QRCodeController {
	return &QRCodeController{
		urlService: urlService,
		baseURL:    baseURL,
	}
}

// GenerateQRCode handles GET /api/v1/qrcode/:shortCode - PNG of the short URL
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	shortCode := c.Param("shortCode")

	// only encode codes that resolve; Preview is cached so this stays cheap
	if _, err := qc.urlService.Preview(c.Request.Context(), shortCode); err != nil {
		respondError(c, err)
		return
	}

	qrCode, err := qrcode.New(qc.baseURL+"/s/"+shortCode, qrcode.Medium)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate QR code"})
		return
	}

	pngData, err := qrCode.PNG(qrCodeSize)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate QR code image"})
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
