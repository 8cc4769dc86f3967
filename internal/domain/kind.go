package domain

import (
	"context"

	"github.com/learning-catalog/internal/pkg/formfield"
	"gorm.io/datatypes"
)

// DetailsForm validates and stores the kind-specific part of a resource.
// *formfield.Field satisfies it.
type DetailsForm interface {
	Fields() []string
	Clean(ctx context.Context, value any) (map[string]any, error)
	Encode(cleaned map[string]any) (datatypes.JSON, error)
	Decode(raw datatypes.JSON) (map[string]any, error)
}

// Relations carries the persistence hooks kinds may need for related fields.
type Relations struct {
	GeoLocations formfield.Related
}

// Kind is a concrete resource subtype.
type Kind interface {
	Named
	Details(rel Relations) DetailsForm
}

// Container marks kinds whose resources can be parents ("ways").
type Container interface {
	Kind
	Container()
}

// Unversioned marks kinds excluded from version history.
type Unversioned interface {
	Kind
	Unversioned()
}

// Defaulter lets a kind adjust a resource before its first save.
type Defaulter interface {
	Kind
	ApplyDefaults(r *Resource)
}

func IsContainer(k Kind) bool {
	_, ok := k.(Container)
	return ok
}

func IsVersioned(k Kind) bool {
	_, ok := k.(Unversioned)
	return !ok
}
