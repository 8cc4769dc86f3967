package usecase

import (
	"strings"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/usecase/dto"
)

// RegistryUseCase describes the registered resource kinds
type RegistryUseCase struct {
	registry *domain.Registry[domain.Kind]
}

func NewRegistryUseCase(registry *domain.Registry[domain.Kind]) *RegistryUseCase {
	return &RegistryUseCase{registry: registry}
}

// Kinds lists every resource kind with its capabilities
func (uc *RegistryUseCase) Kinds() []dto.KindResponse {
	entries := uc.registry.Entries()
	kinds := make([]dto.KindResponse, 0, len(entries))
	for _, e := range entries {
		_, hasSearch := e.Kind.(domain.ExternalSearcher)
		kinds = append(kinds, dto.KindResponse{
			Type:        e.Type,
			DisplayName: e.DisplayName,
			Container:   domain.IsContainer(e.Kind),
			Versioned:   domain.IsVersioned(e.Kind),
			HasSearch:   hasSearch,
			Fields:      e.Kind.Details(domain.Relations{}).Fields(),
		})
	}
	return kinds
}

func (uc *RegistryUseCase) SearchEngines() []domain.SearchEngine {
	return domain.SearchEngines(uc.registry)
}

// SearchURL builds the external search link of kind typ for query
func (uc *RegistryUseCase) SearchURL(typ, query string) (*dto.SearchURLResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.FieldError(errors.ErrInvalidRequest, "q", "This field is required")
	}

	engine, ok := domain.LookupSearchEngine(uc.registry, typ)
	if !ok {
		return nil, errors.ErrSearchEngineNotFound
	}

	return &dto.SearchURLResponse{
		Engine: engine,
		Query:  query,
		URL:    engine.URL(query),
	}, nil
}

// ContainerTypes lists the kinds that can act as ways
func (uc *RegistryUseCase) ContainerTypes() []string {
	var types []string
	for _, e := range uc.registry.Entries() {
		if domain.IsContainer(e.Kind) {
			types = append(types, e.Type)
		}
	}
	return types
}
