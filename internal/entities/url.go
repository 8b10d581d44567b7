package entities

import "time"

// URL is a short-code mapping persisted in the urls table.
type URL struct {
	ID          string    `json:"id"` // UUID
	UserID      *string   `json:"user_id,omitempty"` // nil for anonymous mappings
	OriginalURL string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	ClickCount  int64     `json:"click_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClickBucket is the number of redirects recorded in one time interval.
type ClickBucket struct {
	Time  time.Time `json:"time"`
	Count int64     `json:"count"`
}
