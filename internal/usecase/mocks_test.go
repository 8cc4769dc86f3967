package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
)

// MockResourceRepository is a mock of ResourceRepository
type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}

func (m *MockResourceRepository) GetBySlug(ctx context.Context, parentID *int64, typ, slug string) (*domain.Resource, error) {
	args := m.Called(ctx, parentID, typ, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}

func (m *MockResourceRepository) Create(ctx context.Context, r *domain.Resource) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockResourceRepository) Update(ctx context.Context, r *domain.Resource) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockResourceRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockResourceRepository) ExistsSibling(ctx context.Context, r *domain.Resource, column, value string) (bool, error) {
	args := m.Called(ctx, r, column, value)
	return args.Bool(0), args.Error(1)
}

func (m *MockResourceRepository) Ancestors(ctx context.Context, id int64) ([]*domain.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Resource), args.Error(1)
}

func (m *MockResourceRepository) Children(ctx context.Context, parentID int64, publicOnly bool) ([]*domain.Resource, error) {
	args := m.Called(ctx, parentID, publicOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Resource), args.Error(1)
}

func (m *MockResourceRepository) Search(ctx context.Context, filter repository.ResourceFilter) ([]*domain.Resource, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Resource), args.Int(1), args.Error(2)
}

func (m *MockResourceRepository) SetLanguages(ctx context.Context, resourceID int64, languageIDs []int64) error {
	return m.Called(ctx, resourceID, languageIDs).Error(0)
}

func (m *MockResourceRepository) SetSeeAlso(ctx context.Context, resourceID int64, targetIDs []int64) error {
	return m.Called(ctx, resourceID, targetIDs).Error(0)
}

// MockLanguageRepository is a mock of LanguageRepository
type MockLanguageRepository struct {
	mock.Mock
}

func (m *MockLanguageRepository) GetOrCreate(ctx context.Context, code string) (*domain.ResourceLanguage, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceLanguage), args.Error(1)
}

func (m *MockLanguageRepository) List(ctx context.Context) ([]*domain.ResourceLanguage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ResourceLanguage), args.Error(1)
}

// MockImageRepository is a mock of ImageRepository
type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, img *domain.Image) error {
	return m.Called(ctx, img).Error(0)
}

func (m *MockImageRepository) GetByID(ctx context.Context, id int64) (*domain.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Image), args.Error(1)
}

func (m *MockImageRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockVersionRepository is a mock of VersionRepository
type MockVersionRepository struct {
	mock.Mock
}

func (m *MockVersionRepository) Create(ctx context.Context, v *domain.ResourceVersion) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVersionRepository) GetByID(ctx context.Context, id int64) (*domain.ResourceVersion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceVersion), args.Error(1)
}

func (m *MockVersionRepository) ListByResource(ctx context.Context, resourceID int64) ([]*domain.ResourceVersion, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ResourceVersion), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetResource(ctx context.Context, id int64) (*domain.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}

func (m *MockCacheRepository) SetResource(ctx context.Context, r *domain.Resource, ttl time.Duration) error {
	return m.Called(ctx, r, ttl).Error(0)
}

func (m *MockCacheRepository) InvalidateResource(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCacheRepository) GetSearch(ctx context.Context, key string) (*domain.SearchPage, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchPage), args.Error(1)
}

func (m *MockCacheRepository) SetSearch(ctx context.Context, key string, page *domain.SearchPage, ttl time.Duration) error {
	return m.Called(ctx, key, page, ttl).Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	return m.Called(ctx, stream, group, messageIDs).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

// MockGeoLocationRepository is a mock of GeoLocationRepository
type MockGeoLocationRepository struct {
	mock.Mock
}

func (m *MockGeoLocationRepository) GetByID(ctx context.Context, id int64) (*domain.GeoLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeoLocation), args.Error(1)
}

func (m *MockGeoLocationRepository) Save(ctx context.Context, g *domain.GeoLocation) error {
	return m.Called(ctx, g).Error(0)
}

// MockGeocoder is a mock of Geocoder
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

func (m *MockGeocoder) Reverse(ctx context.Context, p domain.Point) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

// MockCommentRepository is a mock of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommentRepository) ListByResource(ctx context.Context, resourceID int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByAuthor(ctx context.Context, author string) ([]*domain.Comment, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

// MockAnnotationRepository is a mock of AnnotationRepository
type MockAnnotationRepository struct {
	mock.Mock
}

func (m *MockAnnotationRepository) Create(ctx context.Context, a *domain.Annotation) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAnnotationRepository) GetByID(ctx context.Context, id int64) (*domain.Annotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Annotation), args.Error(1)
}

func (m *MockAnnotationRepository) ListByResource(ctx context.Context, resourceID int64) ([]*domain.Annotation, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Annotation), args.Error(1)
}

func (m *MockAnnotationRepository) ListByAuthor(ctx context.Context, author string) ([]*domain.Annotation, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Annotation), args.Error(1)
}

func (m *MockAnnotationRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
