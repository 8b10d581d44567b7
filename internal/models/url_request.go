package models

// ShortenRequest is the body of POST /api/shorten. The URL may omit its scheme.
type ShortenRequest struct {
	URL string `json:"url" form:"url"`
}
