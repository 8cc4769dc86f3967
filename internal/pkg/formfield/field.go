package formfield

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/learning-catalog/internal/pkg/validator"
	"gorm.io/datatypes"
)

// ErrNothingToValidate is returned by Clean when a required field is empty.
var ErrNothingToValidate = stderrors.New("Error found in Form Field: Nothing to validate")

// Error reports sub-form validation failures per field.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s (%s)", e.Fields[k], k))
	}
	return "Error(s) found: " + strings.Join(parts, ", ")
}

// Related persists the instance a field stands for when the field
// represents a relationship rather than inline data.
type Related interface {
	// Load returns the stored values of the related instance.
	Load(ctx context.Context, id int64) (map[string]any, error)
	// Save stores cleaned values (id 0 creates) and returns the stored representation.
	Save(ctx context.Context, id int64, cleaned map[string]any) (map[string]any, error)
}

// Field binds a sub-form type F to a JSON column. F is a struct whose json
// tags name the inputs and whose validate tags carry the rules.
type Field[F any] struct {
	Required bool
	Related  Related
}

// Option configures a Field.
type Option func(*settings)

type settings struct {
	required bool
	related  Related
}

// Required makes Clean reject empty input.
func Required() Option {
	return func(s *settings) { s.required = true }
}

// WithRelated makes the field persist through r.
func WithRelated(r Related) Option {
	return func(s *settings) { s.related = r }
}

func New[F any](opts ...Option) *Field[F] {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	return &Field[F]{Required: s.required, Related: s.related}
}

// Fields lists the input names of the sub-form in declaration order.
func (f *Field[F]) Fields() []string {
	t := reflect.TypeOf((*F)(nil)).Elem()
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		names = append(names, name)
	}
	return names
}

// Compress assembles the sub-form from its inputs, dropping empty ones, and
// returns the cleaned data. Inputs are expected to be valid already.
func (f *Field[F]) Compress(values map[string]any) map[string]any {
	data := make(map[string]any)
	if len(values) == 0 {
		return data
	}
	form, err := f.decode(dropEmpty(values))
	if err != nil {
		return data
	}
	cleaned, err := normalize(form)
	if err != nil {
		return data
	}
	return cleaned
}

// Clean validates value through the sub-form. A mapping is validated
// inline; an integer is treated as the id of a related instance when the
// field has a Related.
func (f *Field[F]) Clean(ctx context.Context, value any) (map[string]any, error) {
	if isEmpty(value) {
		if f.Required {
			return nil, ErrNothingToValidate
		}
		return nil, nil
	}

	if id, ok := asID(value); ok {
		if f.Related == nil {
			return nil, &Error{Fields: map[string]string{"__all__": "Expected a mapping of form values"}}
		}
		stored, err := f.Related.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load related %d: %w", id, err)
		}
		cleaned, err := f.validate(stored)
		if err != nil {
			return nil, err
		}
		return f.Related.Save(ctx, id, cleaned)
	}

	values, ok := value.(map[string]any)
	if !ok {
		return nil, &Error{Fields: map[string]string{"__all__": "Expected a mapping of form values"}}
	}

	cleaned, err := f.validate(dropEmpty(values))
	if err != nil {
		return nil, err
	}
	if f.Related != nil {
		// a mapping that carries the related id updates that instance
		id, _ := asID(values["id"])
		return f.Related.Save(ctx, id, cleaned)
	}
	return cleaned, nil
}

// Encode serializes cleaned data for storage.
func (f *Field[F]) Encode(cleaned map[string]any) (datatypes.JSON, error) {
	if cleaned == nil {
		return nil, nil
	}
	return Dump(cleaned)
}

// Decode reads stored data back into a mapping.
func (f *Field[F]) Decode(raw datatypes.JSON) (map[string]any, error) {
	switch v := Load(raw).(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	default:
		return nil, fmt.Errorf("stored form data is %T, not an object", v)
	}
}

// Form decodes stored data into a typed sub-form value.
func (f *Field[F]) Form(raw datatypes.JSON) (*F, error) {
	values, err := f.Decode(raw)
	if err != nil {
		return nil, err
	}
	return f.decode(values)
}

func (f *Field[F]) validate(values map[string]any) (map[string]any, error) {
	form, err := f.decode(values)
	if err != nil {
		return nil, &Error{Fields: map[string]string{"__all__": err.Error()}}
	}
	if err := validator.Validate(form); err != nil {
		fields := validator.FieldErrors(err)
		if len(fields) == 0 {
			return nil, fmt.Errorf("validate form: %w", err)
		}
		return nil, &Error{Fields: fields}
	}
	return normalize(form)
}

func (f *Field[F]) decode(values map[string]any) (*F, error) {
	form := new(F)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           form,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(values); err != nil {
		return nil, err
	}
	return form, nil
}

func dropEmpty(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if isEmpty(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case map[string]any:
		return len(x) == 0
	case []any:
		return len(x) == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	case float64:
		return x == 0
	case json.Number:
		return x == "" || x == "0"
	}
	return false
}

func asID(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case float64:
		if x == math.Trunc(x) {
			return int64(x), true
		}
	case json.Number:
		if id, err := x.Int64(); err == nil {
			return id, true
		}
	}
	return 0, false
}
