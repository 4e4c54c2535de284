package service

import (
	"context"
	"strings"

	"elibrary/internal/app/query"
	"elibrary/internal/common"
	"elibrary/internal/domain/model"
	"elibrary/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type BookService struct {
	bookRepo repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// Requester is the authenticated identity performing a mutation, as carried
// by the session token.
type Requester struct {
	ID   string
	Role string
}

// BookInput is the schema-validated payload for create and update. Both are
// full replaces of the mutable fields; there is no partial update.
type BookInput struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Year        *int   `json:"year"`
	Genre       string `json:"genre"`
	Language    string `json:"language"`
}

func (in *BookInput) validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Author) == "" {
		return common.Errorf("title and author are required: %w", common.ErrValidation)
	}
	return nil
}

// validateID rejects malformed identifiers before they reach the store, so a
// garbage id is a 400, never a 404.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.Errorf("invalid id: %w", common.ErrValidation)
	}
	return nil
}

func (s *BookService) List(ctx context.Context, spec query.Spec) ([]model.Book, error) {
	return s.bookRepo.List(ctx, spec)
}

func (s *BookService) Get(ctx context.Context, id string) (*model.Book, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.bookRepo.FindByID(ctx, id)
}

func (s *BookService) Create(ctx context.Context, in BookInput, requester Requester) (*model.Book, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	language := in.Language
	if language == "" {
		language = model.DefaultLanguage
	}

	book := &model.Book{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		Year:        in.Year,
		Genre:       in.Genre,
		Language:    language,
		Slug:        slug.Make(in.Title),
	}
	if requester.ID != "" {
		ownerID := requester.ID
		book.OwnerID = &ownerID
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) Update(ctx context.Context, id string, in BookInput, requester Requester) (*model.Book, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeMutation(book, requester); err != nil {
		return nil, err
	}

	book.Title = in.Title
	book.Author = in.Author
	book.Description = in.Description
	book.Year = in.Year
	book.Genre = in.Genre
	book.Language = in.Language
	if book.Language == "" {
		book.Language = model.DefaultLanguage
	}
	book.Slug = slug.Make(in.Title)

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id string, requester Requester) error {
	if err := validateID(id); err != nil {
		return err
	}

	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeMutation(book, requester); err != nil {
		return err
	}

	return s.bookRepo.Delete(ctx, book.ID)
}

// authorizeMutation enforces the ownership model server-side: admins may
// mutate anything, owners their own records. Ownerless records are
// admin-only. Any client-side gating is UX convenience, never authority.
func authorizeMutation(book *model.Book, requester Requester) error {
	if requester.Role == model.RoleAdmin {
		return nil
	}
	if book.OwnedBy(requester.ID) {
		return nil
	}
	return common.Errorf("not the owner of this book: %w", common.ErrForbidden)
}
