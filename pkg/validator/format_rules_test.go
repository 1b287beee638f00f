package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestWholeNumber(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validator.WholeNumber(validator.String("18")))
	assert.Error(t, validator.WholeNumber(validator.String("18.5")))
	assert.NoError(t, validator.WholeNumber(validator.String("")))
	assert.NoError(t, validator.WholeNumber(validator.String("abc")), "non-numeric input is a min/max concern")
}

func TestValidURL(t *testing.T) {
	t.Parallel()
	for _, ok := range []string{"", "https://example.com", "http://localhost:8080/path?q=1", "ftp://files.example.com"} {
		assert.NoError(t, validator.ValidURL(validator.String(ok)), ok)
	}
	for _, bad := range []string{"example.com", "http//broken", "://nohost", "just words"} {
		assert.Error(t, validator.ValidURL(validator.String(bad)), bad)
	}
}

func TestSecureURL(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validator.SecureURL(validator.String("")))
	assert.NoError(t, validator.SecureURL(validator.String("https://example.com")))
	assert.Error(t, validator.SecureURL(validator.String("http://example.com")))
}

func TestAreaCode(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validator.AreaCode(validator.String("(123) 456-7890")))
	assert.Error(t, validator.AreaCode(validator.String("(023) 456-7890")))
	assert.NoError(t, validator.AreaCode(validator.String("")))
}

func TestPhonePattern(t *testing.T) {
	t.Parallel()
	rules := []validator.FieldRule{validator.Pattern(validator.PhonePattern, "Phone number must be in format (XXX) XXX-XXXX")}
	assert.True(t, validator.EvaluateSync("phone", validator.String("(123) 456-7890"), rules, nil).Valid)
	res := validator.EvaluateSync("phone", validator.String("123-456-7890"), rules, nil)
	assert.False(t, res.Valid)
	assert.Equal(t, "Phone number must be in format (XXX) XXX-XXXX", res.Message)
}

func TestPasswordStrength(t *testing.T) {
	t.Parallel()
	assert.Error(t, validator.ContainsUppercase(validator.String("secret12!")))
	assert.NoError(t, validator.ContainsUppercase(validator.String("Secret12!")))
	assert.Error(t, validator.ContainsDigit(validator.String("Secret!!")))
	assert.NoError(t, validator.ContainsDigit(validator.String("Secret1!")))
	assert.Error(t, validator.ContainsSpecialChar(validator.String("Secret12")))
	assert.NoError(t, validator.ContainsSpecialChar(validator.String("Secret12!")))
}

func TestChoicePredicates(t *testing.T) {
	t.Parallel()
	title := validator.OneOf("mr", "mrs", "miss", "dr")
	assert.NoError(t, title(validator.String("dr")))
	assert.Error(t, title(validator.String("sir")))

	interests := validator.SubsetOf("sports", "music", "reading")
	assert.NoError(t, interests(validator.Strings("music", "reading")))
	assert.NoError(t, interests(validator.Strings()))
	assert.Error(t, interests(validator.Strings("chess")))

	noTest := validator.NotContaining("test")
	assert.Error(t, noTest(validator.String("test@b.com")))
	assert.NoError(t, noTest(validator.String("a@b.com")))
}
