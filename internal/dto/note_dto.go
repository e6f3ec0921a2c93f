package dto

import (
	"time"

	"note-share-be/internal/entity"
)

type UploadNoteRequest struct {
	Title   string `form:"title" validate:"required"`
	Subject string `form:"subject"`
	Desc    string `form:"desc"`
	Type    string `form:"type"`
}

type UploadNoteFile struct {
	FileName    string
	ContentType string
	Size        int64
}

type UploadNoteResponse struct {
	Message string       `json:"message"`
	Note    *entity.Note `json:"note"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NoteEventMessage is the payload published on the note events topic.
type NoteEventMessage struct {
	Event    string    `json:"event"`
	NoteId   string    `json:"note_id"`
	Title    string    `json:"title"`
	PublicId string    `json:"public_id,omitempty"`
	At       time.Time `json:"at"`
}
