package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/domain/repository"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/pkg/formfield"
	"github.com/learning-catalog/internal/pkg/metrics"
	"github.com/learning-catalog/internal/usecase/dto"
	"go.uber.org/zap"
)

// ResourceUseCase holds the rules for storing and addressing catalog resources
type ResourceUseCase struct {
	resources   repository.ResourceRepository
	languages   repository.LanguageRepository
	images      repository.ImageRepository
	versions    repository.VersionRepository
	cache       repository.CacheRepository
	streams     repository.StreamRepository
	relations   domain.Relations
	registry    *domain.Registry[domain.Kind]
	logger      *zap.Logger
	searchTTL   time.Duration
	resourceTTL time.Duration
}

func NewResourceUseCase(
	resources repository.ResourceRepository,
	languages repository.LanguageRepository,
	images repository.ImageRepository,
	versions repository.VersionRepository,
	cache repository.CacheRepository,
	streams repository.StreamRepository,
	geoLocations formfield.Related,
	logger *zap.Logger,
	searchTTL, resourceTTL time.Duration,
) *ResourceUseCase {
	return &ResourceUseCase{
		resources:   resources,
		languages:   languages,
		images:      images,
		versions:    versions,
		cache:       cache,
		streams:     streams,
		relations:   domain.Relations{GeoLocations: geoLocations},
		registry:    domain.Resources,
		logger:      logger,
		searchTTL:   searchTTL,
		resourceTTL: resourceTTL,
	}
}

// saveInput is what a create, update or revert hands to save.
type saveInput struct {
	details   any
	languages []string
	author    string
	locale    string
}

// Create stores a new resource
func (uc *ResourceUseCase) Create(ctx context.Context, req dto.SaveResourceRequest, locale string) (*dto.ResourceResponse, error) {
	res := &domain.Resource{
		Type:        req.Type,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		ParentID:    req.ParentID,
		Slug:        req.Slug,
		Public:      true,
		AvatarID:    req.AvatarID,
	}
	if req.Public != nil {
		res.Public = *req.Public
	}

	err := uc.save(ctx, res, saveInput{
		details:   req.Details,
		languages: req.Languages,
		author:    req.Author,
		locale:    locale,
	})
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, res), nil
}

// Update changes an existing resource. The kind of a resource is fixed.
func (uc *ResourceUseCase) Update(ctx context.Context, id int64, req dto.SaveResourceRequest, locale string) (*dto.ResourceResponse, error) {
	res, err := uc.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(req.Type, res.Type) {
		return nil, errors.FieldError(errors.ErrInvalidForm, "type", "The type of a resource cannot be changed")
	}

	res.Name = strings.TrimSpace(req.Name)
	res.Description = req.Description
	res.ParentID = req.ParentID
	res.AvatarID = req.AvatarID
	if req.Slug != "" {
		res.Slug = req.Slug
	}
	if req.Public != nil {
		res.Public = *req.Public
	}

	err = uc.save(ctx, res, saveInput{
		details:   req.Details,
		languages: req.Languages,
		author:    req.Author,
		locale:    locale,
	})
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, res), nil
}

// Revert restores the editable content of a stored version and saves the
// resource again through the full save sequence.
func (uc *ResourceUseCase) Revert(ctx context.Context, resourceID, versionID int64, author, locale string) (*dto.ResourceResponse, error) {
	version, err := uc.versions.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if version.ResourceID != resourceID {
		return nil, errors.ErrVersionNotFound
	}

	snapshot, err := version.DecodeSnapshot()
	if err != nil {
		uc.logger.Error("Failed to decode version snapshot",
			zap.Int64("version_id", versionID), zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	res, err := uc.resources.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	res.Restore(snapshot)

	err = uc.save(ctx, res, saveInput{
		details:   formfield.Load([]byte(snapshot.Details)),
		languages: snapshot.Languages,
		author:    author,
		locale:    locale,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Resource reverted",
		zap.Int64("resource_id", resourceID),
		zap.Int64("version_id", versionID),
		zap.String("author", author))
	return uc.response(ctx, res), nil
}

// save runs the save sequence: kind, parent, avatar, slug, sibling
// uniqueness, details, write, languages, history event, cache. Details come
// after every check that can reject the resource since cleaning them may
// store related rows.
func (uc *ResourceUseCase) save(ctx context.Context, res *domain.Resource, in saveInput) error {
	entry, ok := uc.registry.Lookup(res.Type)
	if !ok {
		return uc.reject(errors.FieldError(errors.ErrUnknownResourceType, "type", ""))
	}
	res.Type = entry.Type

	if res.Name == "" {
		return uc.reject(errors.FieldError(errors.ErrInvalidForm, "name", "This field is required"))
	}

	if d, ok := entry.Kind.(domain.Defaulter); ok && res.IsNew() {
		d.ApplyDefaults(res)
	}

	if err := uc.checkParent(ctx, res); err != nil {
		return err
	}
	if err := uc.checkAvatar(ctx, res); err != nil {
		return err
	}

	res.EnsureSlug()
	if res.Slug == "" {
		return uc.reject(errors.FieldError(errors.ErrInvalidForm, "slug", "Enter a valid slug"))
	}
	if err := uc.ValidateUnique(ctx, res); err != nil {
		return err
	}
	if err := uc.cleanDetails(ctx, entry.Kind, res, in.details); err != nil {
		return err
	}

	created := res.IsNew()
	if created {
		if err := uc.resources.Create(ctx, res); err != nil {
			return err
		}
	} else if err := uc.resources.Update(ctx, res); err != nil {
		return err
	}

	if err := uc.attachLanguages(ctx, res, in.languages, in.locale); err != nil {
		return err
	}

	metrics.RecordResourceSaved(res.Type)
	uc.logger.Info("Resource saved",
		zap.Int64("id", res.ID),
		zap.String("type", res.Type),
		zap.String("slug", res.Slug),
		zap.Bool("created", created))

	uc.publishSaved(ctx, res, in.author)
	uc.invalidate(ctx, res.ID)
	return nil
}

// ValidateUnique rejects a resource whose slug, then name, is already used
// by another resource of the same type under the same parent.
func (uc *ResourceUseCase) ValidateUnique(ctx context.Context, res *domain.Resource) error {
	exists, err := uc.resources.ExistsSibling(ctx, res, "slug", res.Slug)
	if err != nil {
		return err
	}
	if exists {
		return uc.reject(errors.FieldError(errors.ErrDuplicateSlug, "slug", ""))
	}

	exists, err = uc.resources.ExistsSibling(ctx, res, "name", res.Name)
	if err != nil {
		return err
	}
	if exists {
		return uc.reject(errors.FieldError(errors.ErrDuplicateName, "name", ""))
	}
	return nil
}

func (uc *ResourceUseCase) cleanDetails(ctx context.Context, kind domain.Kind, res *domain.Resource, details any) error {
	form := kind.Details(uc.relations)

	cleaned, err := form.Clean(ctx, details)
	if err != nil {
		var formErr *formfield.Error
		if stderrors.As(err, &formErr) || stderrors.Is(err, formfield.ErrNothingToValidate) {
			return uc.reject(errors.FieldError(errors.ErrInvalidForm, "details", err.Error()))
		}
		return err
	}

	encoded, err := form.Encode(cleaned)
	if err != nil {
		uc.logger.Error("Failed to encode details", zap.String("type", res.Type), zap.Error(err))
		return errors.ErrInternalServer
	}
	res.Details = encoded
	return nil
}

func (uc *ResourceUseCase) checkParent(ctx context.Context, res *domain.Resource) error {
	if res.ParentID == nil {
		return nil
	}
	if !res.IsNew() && *res.ParentID == res.ID {
		return uc.reject(errors.FieldError(errors.ErrInvalidParent, "parent_id", "A resource cannot be its own parent"))
	}

	parent, err := uc.resources.GetByID(ctx, *res.ParentID)
	if stderrors.Is(err, errors.ErrResourceNotFound) {
		return uc.reject(errors.FieldError(errors.ErrInvalidParent, "parent_id", ""))
	}
	if err != nil {
		return err
	}

	entry, ok := uc.registry.Lookup(parent.Type)
	if !ok || !domain.IsContainer(entry.Kind) {
		return uc.reject(errors.FieldError(errors.ErrInvalidParent, "parent_id", ""))
	}
	if res.IsNew() {
		return nil
	}

	// the new parent must not be filed under res itself
	chain, err := uc.resources.Ancestors(ctx, *res.ParentID)
	if err != nil {
		return err
	}
	for _, ancestor := range chain {
		if ancestor.ID == res.ID {
			return uc.reject(errors.FieldError(errors.ErrInvalidParent, "parent_id", "A resource cannot be filed under one of its descendants"))
		}
	}
	return nil
}

func (uc *ResourceUseCase) checkAvatar(ctx context.Context, res *domain.Resource) error {
	if res.AvatarID == nil {
		return nil
	}
	exists, err := uc.images.Exists(ctx, *res.AvatarID)
	if err != nil {
		return err
	}
	if !exists {
		return uc.reject(errors.FieldError(errors.ErrImageNotFound, "avatar_id", ""))
	}
	return nil
}

// attachLanguages stores the requested languages. A resource left without
// any gets exactly one: the language of the session locale.
func (uc *ResourceUseCase) attachLanguages(ctx context.Context, res *domain.Resource, codes []string, locale string) error {
	if len(codes) == 0 {
		if len(res.Languages) > 0 {
			return nil
		}
		codes = []string{domain.BaseLanguageCode(locale)}
	}

	seen := make(map[string]bool, len(codes))
	langs := make([]domain.ResourceLanguage, 0, len(codes))
	ids := make([]int64, 0, len(codes))
	for _, code := range codes {
		code = domain.BaseLanguageCode(code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true

		lang, err := uc.languages.GetOrCreate(ctx, code)
		if err != nil {
			return err
		}
		langs = append(langs, *lang)
		ids = append(ids, lang.ID)
	}

	if err := uc.resources.SetLanguages(ctx, res.ID, ids); err != nil {
		return err
	}
	res.Languages = langs
	return nil
}

func (uc *ResourceUseCase) publishSaved(ctx context.Context, res *domain.Resource, author string) {
	event := domain.ResourceSavedEvent{
		EventID:      uuid.New(),
		ResourceID:   res.ID,
		ResourceType: res.Type,
		Snapshot:     res.Snapshot(),
		Author:       author,
		OccurredAt:   time.Now().UTC(),
	}
	if err := uc.streams.PublishToStream(ctx, domain.StreamResourceSaved, event); err != nil {
		uc.logger.Error("Failed to publish resource saved event",
			zap.Int64("resource_id", res.ID),
			zap.Error(err))
	}
}

func (uc *ResourceUseCase) invalidate(ctx context.Context, id int64) {
	if err := uc.cache.InvalidateResource(ctx, id); err != nil {
		uc.logger.Warn("Failed to invalidate cache", zap.Int64("resource_id", id), zap.Error(err))
	}
}

func (uc *ResourceUseCase) reject(err *errors.AppError) error {
	metrics.RecordValidationRejection(err.Field())
	return err
}

// Get returns a resource, from cache when possible
func (uc *ResourceUseCase) Get(ctx context.Context, id int64) (*dto.ResourceResponse, error) {
	res, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, res), nil
}

func (uc *ResourceUseCase) load(ctx context.Context, id int64) (*domain.Resource, error) {
	cached, err := uc.cache.GetResource(ctx, id)
	if err != nil {
		uc.logger.Warn("Cache error, falling back to database", zap.Int64("id", id), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	res, err := uc.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetResource(ctx, res, uc.resourceTTL); err != nil {
		uc.logger.Warn("Failed to cache resource", zap.Int64("id", id), zap.Error(err))
	}
	return res, nil
}

// Delete removes a resource
func (uc *ResourceUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.resources.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	uc.logger.Info("Resource deleted", zap.Int64("id", id))
	return nil
}

// AbsoluteURL returns the catalog URL of a resource. A resource that is not
// filed under a way has none.
func (uc *ResourceUseCase) AbsoluteURL(ctx context.Context, id int64) (string, error) {
	chain, err := uc.resources.Ancestors(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := domain.AbsoluteURL(chain, uc.registry)
	if stderrors.Is(err, domain.ErrNotFound) {
		return "", errors.ErrResourceNotFound.WithMessage("Resource is not filed under a way")
	}
	return url, err
}

// ResolvePath finds the resource addressed by a catalog URL path made of
// "<type>/<slug>" pairs.
func (uc *ResourceUseCase) ResolvePath(ctx context.Context, path string) (*dto.ResourceResponse, error) {
	path = strings.TrimPrefix(strings.Trim(path, "/"), strings.Trim(domain.URLPrefix, "/"))

	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 || len(segments)%2 != 0 {
		return nil, errors.ErrResourceNotFound
	}

	var parentID *int64
	var res *domain.Resource
	for i := 0; i < len(segments); i += 2 {
		entry, ok := uc.registry.Lookup(segments[i])
		if !ok {
			return nil, errors.ErrResourceNotFound
		}
		if i == 0 && !domain.IsContainer(entry.Kind) {
			return nil, errors.ErrResourceNotFound
		}

		var err error
		res, err = uc.resources.GetBySlug(ctx, parentID, entry.Type, segments[i+1])
		if err != nil {
			return nil, err
		}
		id := res.ID
		parentID = &id
	}

	return uc.Get(ctx, res.ID)
}

// Search lists public resources matching the request. Pages are cached.
func (uc *ResourceUseCase) Search(ctx context.Context, req dto.SearchResourcesRequest) (*domain.SearchPage, error) {
	types := make([]string, 0, len(req.Types))
	for _, t := range req.Types {
		entry, ok := uc.registry.Lookup(t)
		if !ok {
			return nil, errors.FieldError(errors.ErrUnknownResourceType, "type", fmt.Sprintf("Unknown resource type %q", t))
		}
		types = append(types, entry.Type)
	}
	sort.Strings(types)

	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	filter := repository.ResourceFilter{
		Query:      strings.TrimSpace(req.Query),
		Types:      types,
		ParentID:   req.ParentID,
		PublicOnly: true,
		Limit:      repository.ClampLimit(req.Limit),
		Offset:     offset,
	}
	key := searchKey(filter)

	cached, err := uc.cache.GetSearch(ctx, key)
	if err != nil {
		uc.logger.Warn("Search cache error", zap.String("key", key), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	found, total, err := uc.resources.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := &domain.SearchPage{
		Items:  uc.previews(found),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	if err := uc.cache.SetSearch(ctx, key, page, uc.searchTTL); err != nil {
		uc.logger.Warn("Failed to cache search", zap.String("key", key), zap.Error(err))
	}
	return page, nil
}

// Children lists the public resources filed under a way
func (uc *ResourceUseCase) Children(ctx context.Context, id int64) ([]*domain.Preview, error) {
	if _, err := uc.load(ctx, id); err != nil {
		return nil, err
	}
	children, err := uc.resources.Children(ctx, id, true)
	if err != nil {
		return nil, err
	}
	return uc.previews(children), nil
}

// Home lists the public root ways
func (uc *ResourceUseCase) Home(ctx context.Context, containerTypes []string) ([]*domain.Preview, error) {
	ways, _, err := uc.resources.Search(ctx, repository.ResourceFilter{
		Types:      containerTypes,
		RootsOnly:  true,
		PublicOnly: true,
		Limit:      repository.MaxQueryLimit,
	})
	if err != nil {
		return nil, err
	}

	previews := uc.previews(ways)
	for i, w := range ways {
		if url, err := domain.AbsoluteURL([]*domain.Resource{w}, uc.registry); err == nil {
			previews[i].URL = url
		}
	}
	return previews, nil
}

// Preview summarises a resource, URL included when it has one
func (uc *ResourceUseCase) Preview(ctx context.Context, id int64) (*domain.Preview, error) {
	res, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	p := uc.preview(res)
	if url, err := uc.AbsoluteURL(ctx, id); err == nil {
		p.URL = url
	}
	return p, nil
}

// SetSeeAlso replaces the related resources shown next to a resource
func (uc *ResourceUseCase) SetSeeAlso(ctx context.Context, id int64, targets []int64) error {
	if _, err := uc.resources.GetByID(ctx, id); err != nil {
		return err
	}

	ids := make([]int64, 0, len(targets))
	seen := make(map[int64]bool, len(targets))
	for _, t := range targets {
		if t == id || seen[t] {
			continue
		}
		seen[t] = true
		ids = append(ids, t)
	}

	if err := uc.resources.SetSeeAlso(ctx, id, ids); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *ResourceUseCase) response(ctx context.Context, res *domain.Resource) *dto.ResourceResponse {
	out := &dto.ResourceResponse{Resource: res, DisplayType: uc.displayType(res.Type)}
	if url, err := uc.AbsoluteURL(ctx, res.ID); err == nil {
		out.URL = url
	}
	return out
}

func (uc *ResourceUseCase) previews(resources []*domain.Resource) []*domain.Preview {
	out := make([]*domain.Preview, 0, len(resources))
	for _, r := range resources {
		out = append(out, uc.preview(r))
	}
	return out
}

func (uc *ResourceUseCase) preview(r *domain.Resource) *domain.Preview {
	return &domain.Preview{
		ID:          r.ID,
		Type:        r.Type,
		DisplayType: uc.displayType(r.Type),
		Name:        r.Name,
		Description: r.Description,
		Languages:   r.LanguageCodes(),
		Public:      r.Public,
	}
}

func (uc *ResourceUseCase) displayType(typ string) string {
	if entry, ok := uc.registry.Lookup(typ); ok {
		return entry.DisplayName
	}
	return typ
}

func searchKey(f repository.ResourceFilter) string {
	parent := int64(0)
	if f.ParentID != nil {
		parent = *f.ParentID
	}
	return fmt.Sprintf("q=%s|types=%s|parent=%d|limit=%d|offset=%d",
		strings.ToLower(f.Query), strings.Join(f.Types, ","), parent, f.Limit, f.Offset)
}
