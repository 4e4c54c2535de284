package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"elibrary/internal/common"
	"elibrary/internal/domain/model"
)

func newTestContactService(t *testing.T) (*ContactService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.json")
	return NewContactService(path), path
}

func readContacts(t *testing.T, path string) []model.Contact {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read contacts file: %v", err)
	}
	var contacts []model.Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		t.Fatalf("unmarshal contacts file: %v", err)
	}
	return contacts
}

func TestContactAppend(t *testing.T) {
	svc, path := newTestContactService(t)
	ctx := context.Background()

	first := ContactInput{Name: "Ada", Email: "ada@example.com", Message: "Hello"}
	second := ContactInput{Name: "Grace", Email: "grace@example.com", Message: "Hi there"}

	if _, err := svc.Append(ctx, first); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if _, err := svc.Append(ctx, second); err != nil {
		t.Fatalf("second append: %v", err)
	}

	contacts := readContacts(t, path)
	if len(contacts) != 2 {
		t.Fatalf("got %d contacts, want 2", len(contacts))
	}
	if contacts[0].Name != "Ada" || contacts[1].Name != "Grace" {
		t.Errorf("order not preserved: %q, %q", contacts[0].Name, contacts[1].Name)
	}
	if contacts[0].Date.IsZero() {
		t.Errorf("date not stamped")
	}
}

func TestContactValidation(t *testing.T) {
	svc, path := newTestContactService(t)
	ctx := context.Background()

	tests := []ContactInput{
		{Email: "a@example.com", Message: "m"},
		{Name: "Ada", Message: "m"},
		{Name: "Ada", Email: "a@example.com"},
		{Name: "  ", Email: "a@example.com", Message: "m"},
	}
	for _, in := range tests {
		if _, err := svc.Append(ctx, in); !errors.Is(err, common.ErrValidation) {
			t.Errorf("Append(%+v) = %v, want ErrValidation", in, err)
		}
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("invalid submissions must not create the file")
	}
}

// A corrupt contacts file must not lose the new message.
func TestContactRecoversFromCorruptFile(t *testing.T) {
	svc, path := newTestContactService(t)

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, err := svc.Append(context.Background(), ContactInput{
		Name: "Ada", Email: "ada@example.com", Message: "Hello",
	}); err != nil {
		t.Fatalf("append over corrupt file: %v", err)
	}

	contacts := readContacts(t, path)
	if len(contacts) != 1 || contacts[0].Name != "Ada" {
		t.Errorf("unexpected contents: %+v", contacts)
	}
}
