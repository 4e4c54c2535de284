package model

import (
	"time"
)

// DefaultLanguage is applied when a create or update payload omits language.
const DefaultLanguage = "English"

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Year        *int      `json:"year"` // null when unknown
	Genre       string    `json:"genre"`
	Language    string    `json:"language"`
	Slug        string    `json:"slug"`
	OwnerID     *string   `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnedBy reports whether the book's owner is the given user. Ownerless
// records (seeded or imported) belong to nobody.
func (b *Book) OwnedBy(userID string) bool {
	return b.OwnerID != nil && *b.OwnerID == userID
}
