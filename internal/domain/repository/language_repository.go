package repository

import (
	"context"

	"github.com/learning-catalog/internal/domain"
)

// LanguageRepository stores the language vocabulary.
type LanguageRepository interface {
	// GetOrCreate returns the language with code, creating it if needed
	GetOrCreate(ctx context.Context, code string) (*domain.ResourceLanguage, error)

	// List returns all known languages ordered by code
	List(ctx context.Context) ([]*domain.ResourceLanguage, error)
}
