package domain

import "github.com/learning-catalog/internal/pkg/formfield"

// PlaceForm is the address a place is geocoded from.
type PlaceForm struct {
	Address string `json:"address" validate:"required,max=200"`
}

// Place is a physical location. Its details are a related GeoLocation,
// geocoded and stored when the place is saved.
type Place struct{}

func (Place) Name() string        { return "Place" }
func (Place) VerboseName() string { return "place" }

func (Place) Details(rel Relations) DetailsForm {
	opts := []formfield.Option{formfield.Required()}
	if rel.GeoLocations != nil {
		opts = append(opts, formfield.WithRelated(rel.GeoLocations))
	}
	return formfield.New[PlaceForm](opts...)
}

func init() {
	RegisterResource(Place{})
}
