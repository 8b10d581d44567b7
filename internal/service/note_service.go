package service

import (
	"strings"
	"sync"
)

// NoteStore is an in-memory, ordered list of notes. Contents are lost on restart.
type NoteStore struct {
	mu    sync.Mutex
	notes []string
}

func NewNoteStore() *NoteStore {
	return &NoteStore{notes: []string{}}
}

// Add appends the trimmed text. Blank text is ignored.
func (s *NoteStore) Add(text string) []string {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if text != "" {
		s.notes = append(s.notes, text)
	}
	return s.snapshot()
}

func (s *NoteStore) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Delete removes the note at index. An index outside the list is a no-op.
func (s *NoteStore) Delete(index int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.notes) {
		s.notes = append(s.notes[:index], s.notes[index+1:]...)
	}
	return s.snapshot()
}

func (s *NoteStore) Clear() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = []string{}
	return s.snapshot()
}

func (s *NoteStore) snapshot() []string {
	out := make([]string, len(s.notes))
	copy(out, s.notes)
	return out
}
