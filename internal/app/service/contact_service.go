package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"elibrary/internal/common"
	"elibrary/internal/domain/model"
)

// ContactService appends contact-form submissions to a flat JSON array file.
// The file is the system of record; there is no database table for contacts.
type ContactService struct {
	path string
	mu   sync.Mutex
}

func NewContactService(path string) *ContactService {
	return &ContactService{path: path}
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
}

func (in *ContactInput) validate() error {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Message) == "" {
		return common.Errorf("name, email and message are required: %w", common.ErrValidation)
	}
	return nil
}

func (s *ContactService) Append(ctx context.Context, in ContactInput) (*model.Contact, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	contact := model.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		Date:    time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var contacts []model.Contact
	data, err := os.ReadFile(s.path)
	if err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &contacts); err != nil {
			// Corrupt file: start a fresh array rather than losing the message.
			log.Printf("contacts file %s unreadable, starting over: %v", s.path, err)
			contacts = nil
		}
	}

	contacts = append(contacts, contact)

	out, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal contacts: %w", err)
	}
	if err := os.WriteFile(s.path, out, 0o644); err != nil {
		return nil, fmt.Errorf("write contacts file: %w", err)
	}
	return &contact, nil
}
