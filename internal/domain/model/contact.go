package model

import (
	"time"
)

// Contact is one submitted contact-form message, as persisted in the
// append-only contacts file.
type Contact struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}
