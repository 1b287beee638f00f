package ruleset_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/ruleset"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

const signup = `
form: signup
fields:
  - name: username
    rules:
      - rule: required
        message: Username is required
      - rule: minLength
        value: 3
        message: Username must be at least 3 characters
      - rule: maxLength
        value: 20
        message: Username cannot exceed 20 characters
      - rule: pattern
        value: "[a-zA-Z0-9_]+"
        message: Username can only contain letters, numbers, and underscores
      - rule: async
        check: available
  - name: email
    rules:
      - rule: pattern
        value: "(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\\.[A-Z]{2,}"
        message: Invalid email address
      - rule: custom
        check: notContaining
        args: [test]
        message: Test emails are not allowed
  - name: age
    rules:
      - rule: min
        value: 18
        message: Must be at least 18 years old
      - rule: max
        value: 120
        message: Invalid age
  - name: password
    rules:
      - rule: custom
        check: uppercase
        message: Password must contain at least one uppercase letter
  - name: confirmPassword
    rules:
      - rule: crossField
        other: password
        message: Passwords don't match
        translationKey: validation.passwords_match
`

func registry() *ruleset.Registry {
	reg := ruleset.NewRegistry()
	reg.RegisterAsync("available", func(_ context.Context, v validator.Value) error {
		if strings.Contains(strings.ToLower(v.Text()), "taken") {
			return errors.New("Username is already taken")
		}
		return nil
	})
	return reg
}

func TestParse(t *testing.T) {
	t.Parallel()
	set, err := ruleset.Parse([]byte(signup), registry())
	require.NoError(t, err)
	assert.Equal(t, "signup", set.Form)

	names := make([]string, 0)
	for _, f := range set.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"username", "email", "age", "password", "confirmPassword"}, names)
	assert.Nil(t, set.Rules("missing"))

	username := set.Rules("username")
	require.Len(t, username, 5)
	assert.True(t, validator.HasAsync(username))

	confirm := set.Rules("confirmPassword")
	require.Len(t, confirm, 1)
	assert.Equal(t, "password", confirm[0].Other())
	assert.Equal(t, "validation.passwords_match", confirm[0].TranslationKey)
}

func TestParsedRulesEvaluate(t *testing.T) {
	t.Parallel()
	set, err := ruleset.Parse([]byte(signup), registry())
	require.NoError(t, err)
	ctx := context.Background()

	cases := []struct {
		field, value, want string
	}{
		{"username", "ab", "Username must be at least 3 characters"},
		{"username", "abcdefghijklmnopqrstu", "Username cannot exceed 20 characters"},
		{"username", "bad name", "Username can only contain letters, numbers, and underscores"},
		{"username", "taken_one", "Username is already taken"},
		{"email", "test@example.com", "Test emails are not allowed"},
		{"email", "nope", "Invalid email address"},
		{"age", "17", "Must be at least 18 years old"},
		{"age", "121", "Invalid age"},
		{"password", "secret", "Password must contain at least one uppercase letter"},
	}
	for _, tc := range cases {
		t.Run(tc.field+"/"+tc.value, func(t *testing.T) {
			res := validator.EvaluateField(ctx, tc.field, validator.String(tc.value), set.Rules(tc.field), nil)
			assert.False(t, res.Valid)
			assert.Equal(t, tc.want, res.Message)
		})
	}

	ok := validator.EvaluateField(ctx, "username", validator.String("gopher_1"), set.Rules("username"), nil)
	assert.True(t, ok.Valid)

	fields := validator.Values{"password": validator.String("Secret1!")}
	res := validator.EvaluateSync("confirmPassword", validator.String("Secret2!"), set.Rules("confirmPassword"), fields)
	assert.Equal(t, "Passwords don't match", res.Message)
	res = validator.EvaluateSync("confirmPassword", validator.String("Secret1!"), set.Rules("confirmPassword"), fields)
	assert.True(t, res.Valid)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"empty":          "",
		"unknown rule":   "fields:\n  - name: a\n    rules:\n      - rule: sometimes\n",
		"bad pattern":    "fields:\n  - name: a\n    rules:\n      - rule: pattern\n        value: \"[\"\n",
		"missing value":  "fields:\n  - name: a\n    rules:\n      - rule: min\n",
		"bad length":     "fields:\n  - name: a\n    rules:\n      - rule: minLength\n        value: 2.5\n",
		"unknown check":  "fields:\n  - name: a\n    rules:\n      - rule: custom\n        check: nope\n",
		"unknown async":  "fields:\n  - name: a\n    rules:\n      - rule: async\n        check: nope\n",
		"cross no other": "fields:\n  - name: a\n    rules:\n      - rule: crossField\n",
		"duplicate":      "fields:\n  - name: a\n  - name: a\n",
		"nameless":       "fields:\n  - rules: []\n",
		"unknown key":    "fields:\n  - name: a\n    colour: red\n",
		"bad args":       "fields:\n  - name: a\n    rules:\n      - rule: custom\n        check: url\n        args: [x]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ruleset.Parse([]byte(doc), nil)
			assert.ErrorIs(t, err, ruleset.ErrInvalidDocument)
		})
	}

	_, err := ruleset.Parse([]byte("fields:\n  - name: a\n    rules:\n      - rule: custom\n        check: nope\n"), nil)
	assert.ErrorIs(t, err, ruleset.ErrUnknownCheck)
}

func TestLoadFS(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{"rules/signup.yaml": {Data: []byte(signup)}}

	set, err := ruleset.LoadFS(fsys, "rules/signup.yaml", registry())
	require.NoError(t, err)
	assert.Len(t, set.Fields(), 5)

	_, err = ruleset.LoadFS(fsys, "rules/missing.yaml", registry())
	assert.Error(t, err)
}
