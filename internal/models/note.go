package models

type NoteRequest struct {
	Note string `json:"note" form:"note"`
}

type NotesResponse struct {
	Success bool     `json:"success"`
	Notes   []string `json:"notes"`
}
