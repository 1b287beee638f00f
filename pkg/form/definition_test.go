package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestNewDefinition(t *testing.T) {
	t.Parallel()

	t.Run("fills labels inputs and defaults", func(t *testing.T) {
		t.Parallel()
		def, err := form.NewDefinition("prefs",
			form.Field{Name: "firstName"},
			form.Field{Name: "newsletter", Input: form.InputCheckbox},
			form.Field{Name: "interests", Input: form.InputCheckboxes},
		)
		require.NoError(t, err)

		first, ok := def.Field("firstName")
		require.True(t, ok)
		assert.Equal(t, "First name", first.Label)
		assert.Equal(t, form.InputText, first.Input)

		defaults := def.Defaults()
		assert.Equal(t, validator.BoolValue, defaults["newsletter"].Kind())
		assert.Equal(t, validator.StringsValue, defaults["interests"].Kind())
		assert.Equal(t, []string{"firstName", "newsletter", "interests"}, def.Names())
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		t.Parallel()
		_, err := form.NewDefinition("dup", form.Field{Name: "a"}, form.Field{Name: "a"})
		assert.ErrorIs(t, err, form.ErrDuplicateField)
	})

	t.Run("rejects unknown cross-field reference", func(t *testing.T) {
		t.Parallel()
		_, err := form.NewDefinition("bad", form.Field{
			Name:  "confirm",
			Rules: []validator.FieldRule{validator.Equals("password", "")},
		})
		assert.ErrorIs(t, err, form.ErrInvalidDefinition)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()
		_, err := form.NewDefinition(" ")
		assert.ErrorIs(t, err, form.ErrInvalidDefinition)
	})

	t.Run("tracks dependents", func(t *testing.T) {
		t.Parallel()
		def := form.MustDefinition("login",
			form.Field{Name: "password"},
			form.Field{Name: "confirmPassword", Rules: []validator.FieldRule{validator.Equals("password", "")}},
		)
		assert.Equal(t, []string{"confirmPassword"}, def.Dependents("password"))
		assert.Empty(t, def.Dependents("confirmPassword"))
	})
}

func TestDefinitionParse(t *testing.T) {
	t.Parallel()
	def := form.MustDefinition("prefs",
		form.Field{Name: "name"},
		form.Field{Name: "newsletter", Input: form.InputCheckbox},
		form.Field{Name: "interests", Input: form.InputCheckboxes},
	)

	v, err := def.Parse("name", []string{"Ann", "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", v.Text())

	v, err = def.Parse("newsletter", []string{"on"})
	require.NoError(t, err)
	assert.True(t, v.Bool())

	v, err = def.Parse("newsletter", nil)
	require.NoError(t, err)
	assert.False(t, v.Bool())

	v, err = def.Parse("interests", []string{"music", "sports", "music"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"music", "sports"}, v.Items())

	_, err = def.Parse("missing", nil)
	assert.ErrorIs(t, err, form.ErrUnknownField)
}

func TestDefinitionDecode(t *testing.T) {
	t.Parallel()
	def := form.MustDefinition("prefs",
		form.Field{Name: "age"},
		form.Field{Name: "newsletter", Input: form.InputCheckbox},
		form.Field{Name: "interests", Input: form.InputCheckboxes},
	)

	v, err := def.Decode("age", float64(21))
	require.NoError(t, err)
	assert.Equal(t, validator.StringValue, v.Kind())
	assert.Equal(t, "21", v.Text())

	v, err = def.Decode("newsletter", true)
	require.NoError(t, err)
	assert.True(t, v.Bool())

	v, err = def.Decode("interests", []any{"reading"})
	require.NoError(t, err)
	assert.Equal(t, []string{"reading"}, v.Items())

	v, err = def.Decode("interests", "sports,music")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sports", "music"}, v.Items())
}

func TestChoicesAndFormOptions(t *testing.T) {
	t.Parallel()

	def := form.MustDefinition("prefs",
		form.Field{
			Name:    "color",
			Input:   form.InputSelect,
			Default: validator.String("red"),
			Options: []form.Choice{{Value: "red", Label: "Red"}, {Value: "blue", Label: "Blue"}},
		},
	)
	field, ok := def.Field("color")
	require.True(t, ok)
	assert.Equal(t, []form.Choice{{Value: "red", Label: "Red"}, {Value: "blue", Label: "Blue"}}, field.Options)

	opts := []form.Option{form.WithMode(form.ModeOnSubmit)}
	f := form.New(def, opts...)
	assert.Equal(t, form.ModeOnSubmit, f.Mode())
	v, _ := f.Value("color")
	assert.Equal(t, "red", v.Text())
}
