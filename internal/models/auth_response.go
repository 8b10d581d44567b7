package models

import "time"

type LoginResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CheckAuthResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
}
