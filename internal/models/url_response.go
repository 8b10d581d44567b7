package models

import (
	"time"

	"appsuite-be/internal/entities"
)

type ShortenResponse struct {
	Success      bool   `json:"success"`
	ShortenedURL string `json:"shortened_url"`
	ShortCode    string `json:"short_code"`
	Message      string `json:"message"`
}

// URLRecord is one history entry.
type URLRecord struct {
	ID          string    `json:"id"`
	OriginalURL string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	ShortURL    string    `json:"short_url"`
	CreatedAt   time.Time `json:"created_at"`
	ClickCount  int64     `json:"click_count"`
}

type HistoryResponse struct {
	Success bool        `json:"success"`
	Data    []URLRecord `json:"data"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type ClearHistoryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Deleted int    `json:"deleted"`
}

type PreviewResponse struct {
	OriginalURL string `json:"original_url"`
}

type AnalyticsResponse struct {
	Success   bool                   `json:"success"`
	ShortCode string                 `json:"short_code"`
	Hours     int                    `json:"hours"`
	Data      []entities.ClickBucket `json:"data"`
}
