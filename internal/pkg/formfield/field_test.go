package formfield

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Age   int    `json:"age,omitempty" validate:"omitempty,min=1"`
}

type fakeRelated struct {
	stored map[int64]map[string]any
	saved  []map[string]any
	nextID int64
}

func (r *fakeRelated) Load(_ context.Context, id int64) (map[string]any, error) {
	v, ok := r.stored[id]
	if !ok {
		return nil, errors.New("missing")
	}
	return v, nil
}

func (r *fakeRelated) Save(_ context.Context, id int64, cleaned map[string]any) (map[string]any, error) {
	if id == 0 {
		r.nextID++
		id = r.nextID
	}
	r.saved = append(r.saved, cleaned)
	out := map[string]any{"id": float64(id)}
	for k, v := range cleaned {
		out[k] = v
	}
	return out, nil
}

func TestField_RoundTrip(t *testing.T) {
	f := New[contactForm]()

	cleaned, err := f.Clean(context.Background(), map[string]any{
		"email": "ada@example.org",
		"phone": "+33 1 23",
		"age":   "36",
	})
	require.NoError(t, err)

	stored, err := f.Encode(cleaned)
	require.NoError(t, err)

	decoded, err := f.Decode(stored)
	require.NoError(t, err)
	assert.Equal(t, cleaned, decoded)
	assert.Equal(t, float64(36), decoded["age"])

	form, err := f.Form(stored)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.org", form.Email)
	assert.Equal(t, 36, form.Age)
}

func TestField_CleanEmpty(t *testing.T) {
	optional := New[contactForm]()
	cleaned, err := optional.Clean(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, cleaned)

	required := New[contactForm](Required())
	_, err = required.Clean(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, ErrNothingToValidate)
}

func TestField_CleanInvalid(t *testing.T) {
	f := New[contactForm]()

	_, err := f.Clean(context.Background(), map[string]any{"email": "nope", "age": "-2"})
	require.Error(t, err)

	var formErr *Error
	require.ErrorAs(t, err, &formErr)
	assert.Contains(t, formErr.Fields, "email")
	assert.Contains(t, formErr.Fields, "age")
	assert.Equal(t,
		"Error(s) found: Ensure this value is at least 1 (age), Enter a valid email address (email)",
		err.Error())
}

func TestField_CleanRelated(t *testing.T) {
	related := &fakeRelated{stored: map[int64]map[string]any{
		7: {"email": "grace@example.org"},
	}}
	f := New[contactForm](WithRelated(related))

	out, err := f.Clean(context.Background(), float64(7))
	require.NoError(t, err)
	assert.Equal(t, float64(7), out["id"])
	assert.Equal(t, "grace@example.org", out["email"])

	out, err = f.Clean(context.Background(), map[string]any{"email": "new@example.org"})
	require.NoError(t, err)
	assert.Equal(t, float64(1), out["id"])
	assert.Len(t, related.saved, 2)

	out, err = f.Clean(context.Background(), map[string]any{"id": float64(7), "email": "moved@example.org"})
	require.NoError(t, err)
	assert.Equal(t, float64(7), out["id"], "a mapping with an id updates that instance")
}

func TestField_IntegerWithoutRelated(t *testing.T) {
	f := New[contactForm]()
	_, err := f.Clean(context.Background(), 3)
	assert.Error(t, err)
}

func TestField_Compress(t *testing.T) {
	f := New[contactForm]()

	assert.Empty(t, f.Compress(nil))

	out := f.Compress(map[string]any{"email": "a@b.c", "phone": ""})
	assert.Equal(t, "a@b.c", out["email"])
	_, hasPhone := out["phone"]
	assert.False(t, hasPhone)
}

func TestField_Fields(t *testing.T) {
	assert.Equal(t, []string{"email", "phone", "age"}, New[contactForm]().Fields())
}

func TestLoadDump(t *testing.T) {
	assert.Equal(t, "not json", Load("not json"))
	assert.Nil(t, Load(""))
	assert.Equal(t, map[string]any{"a": float64(1)}, Load(`{"a":1}`))

	raw, err := Dump(`{"already":"encoded"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"already":"encoded"}`, string(raw))

	raw, err = Dump(map[string]any{"k": "v"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"v"}`, string(raw))
}
