package examples

import (
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/ruleset"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

const (
	Login      = "login"
	Profile    = "profile"
	Controlled = "controlled"
	FormState  = "formstate"
	Schema     = "schema"
)

func loginDefinition() *form.Definition {
	return form.MustDefinition(Login,
		form.Field{
			Name:        "email",
			Input:       form.InputEmail,
			Placeholder: "you@example.com",
			Transform:   form.TrimSpace(),
			Description: `Demonstrates <code>validator.Pattern</code> for the email format and <code>validator.Required</code> for presence.`,
			Rules: []validator.FieldRule{
				validator.Required("Email is required"),
				validator.Pattern(validator.EmailPattern, "Invalid email address"),
			},
		},
		form.Field{
			Name:        "password",
			Input:       form.InputPassword,
			Description: `Shows a minimum length rule with <code>validator.MinLength</code>.`,
			Rules: []validator.FieldRule{
				validator.Required("Password is required"),
				validator.MinLength(8, "Password must be at least 8 characters"),
			},
		},
		form.Field{
			Name:        "confirmPassword",
			Label:       "Confirm Password",
			Input:       form.InputPassword,
			Description: `A cross-field rule (<code>validator.Equals</code>) re-checked whenever the password changes.`,
			Rules: []validator.FieldRule{
				validator.Required("Please confirm your password"),
				validator.Equals("password", "Passwords do not match"),
			},
		},
	)
}

func profileDefinition(checker UsernameChecker) *form.Definition {
	return form.MustDefinition(Profile,
		form.Field{
			Name:        "username",
			Placeholder: "Try a name containing 'taken'",
			Transform:   form.TrimSpace(),
			Description: `Async validation (<code>validator.Async</code>) simulating an availability lookup. Try a username containing the word 'taken'.`,
			Rules: []validator.FieldRule{
				validator.Required("Username is required"),
				validator.Async(checker.Check, ""),
			},
		},
		form.Field{
			Name:        "age",
			Input:       form.InputNumber,
			Description: `Numeric bounds with <code>validator.Min</code> and <code>validator.Max</code>, plus a custom whole-number check.`,
			Rules: []validator.FieldRule{
				validator.Required("Age is required"),
				validator.Min(18, "Must be at least 18 years old"),
				validator.Max(100, "Age cannot exceed 100"),
				validator.Custom(validator.WholeNumber, "Age must be a whole number"),
			},
		},
		form.Field{
			Name:        "website",
			Placeholder: "https://example.com",
			Description: `Custom URL validation. Optional, but must be a valid URL when filled.`,
			Rules: []validator.FieldRule{
				validator.Custom(validator.ValidURL, "Must be a valid URL starting with http:// or https://"),
			},
		},
		form.Field{
			Name:        "phone",
			Placeholder: "(123) 456-7890",
			Description: `A pattern for the phone format and a custom rule for the area code. Optional, but must match the format when provided.`,
			Rules: []validator.FieldRule{
				validator.Pattern(validator.PhonePattern, "Phone number must be in format (XXX) XXX-XXXX"),
				validator.Custom(validator.AreaCode, "Area code cannot start with 0"),
			},
		},
	)
}

var (
	titles    = []string{"mr", "mrs", "miss", "dr"}
	interests = []string{"sports", "music", "reading"}
)

func controlledDefinition() *form.Definition {
	return form.MustDefinition(Controlled,
		form.Field{
			Name:        "title",
			Input:       form.InputSelect,
			Default:     validator.String("mr"),
			Description: `A select bound to a typed value.`,
			Options: []form.Choice{
				{Value: "mr", Label: "Mr."},
				{Value: "mrs", Label: "Mrs."},
				{Value: "miss", Label: "Miss"},
				{Value: "dr", Label: "Dr."},
			},
			Rules: []validator.FieldRule{
				validator.Custom(validator.OneOf(titles...), "Please pick a title"),
			},
		},
		form.Field{
			Name:        "firstName",
			Placeholder: "First Name",
			Default:     validator.String("JOHN"),
			Transform:   form.Chain(form.TrimSpace(), form.UpperCase()),
			Description: `A text input with a value transform: every change is upper-cased.`,
			Rules:       []validator.FieldRule{validator.Required("First name is required")},
		},
		form.Field{
			Name:        "lastName",
			Placeholder: "Last Name",
			Default:     validator.String("DOE"),
			Transform:   form.Chain(form.TrimSpace(), form.UpperCase()),
			Description: `The same upper-case transform on another field.`,
			Rules:       []validator.FieldRule{validator.Required("Last name is required")},
		},
		form.Field{
			Name:        "newsletter",
			Label:       "Subscribe to newsletter",
			Input:       form.InputCheckbox,
			Default:     validator.Bool(true),
			Description: `A checkbox holding a boolean.`,
		},
		form.Field{
			Name:        "interests",
			Input:       form.InputCheckboxes,
			Default:     validator.Strings("sports", "music"),
			Description: `Multiple checkboxes holding a set of strings.`,
			Options: []form.Choice{
				{Value: "sports", Label: "Sports"},
				{Value: "music", Label: "Music"},
				{Value: "reading", Label: "Reading"},
			},
			Rules: []validator.FieldRule{
				validator.Custom(validator.SubsetOf(interests...), "Unknown interest"),
			},
		},
	)
}

func formStateDefinition() *form.Definition {
	return form.MustDefinition(FormState,
		form.Field{
			Name:        "username",
			Placeholder: "Enter username",
			Rules:       []validator.FieldRule{validator.Required("Username is required")},
		},
		form.Field{
			Name:        "email",
			Input:       form.InputEmail,
			Placeholder: "Enter email",
			Rules: []validator.FieldRule{
				validator.Required("Email is required"),
				validator.Pattern(validator.EmailPattern, "Invalid email address"),
			},
		},
		form.Field{
			Name:        "bio",
			Input:       form.InputTextArea,
			Placeholder: "Enter bio (optional)",
		},
	)
}

// schemaFields carries the presentation of the schema example; its rules
// come from rules/schema.yaml.
var schemaFields = []form.Field{
	{Name: "username", Placeholder: "Enter username", Description: "Must be 3-20 characters, containing only letters, numbers, and underscores."},
	{Name: "email", Input: form.InputEmail, Placeholder: "Enter email", Description: "Must be a valid email address. Test emails are not allowed."},
	{Name: "age", Input: form.InputNumber, Placeholder: "Enter age", Description: "Must be between 18 and 120."},
	{Name: "website", Label: "Website (optional)", Placeholder: "https://example.com", Description: "If provided, must be a valid HTTPS URL."},
	{Name: "password", Input: form.InputPassword, Placeholder: "Enter password", Description: "Must contain at least 8 characters, one uppercase letter, one number, and one special character."},
	{Name: "confirmPassword", Label: "Confirm Password", Input: form.InputPassword, Placeholder: "Confirm password", Description: "Must match the password field above."},
}

func schemaDefinition(reg *ruleset.Registry) (*form.Definition, error) {
	set, err := ruleset.LoadFS(assets, "rules/schema.yaml", reg)
	if err != nil {
		return nil, err
	}
	if set.Form != Schema {
		return nil, fmt.Errorf("examples: rules/schema.yaml declares form %q", set.Form)
	}

	fields := make([]form.Field, 0, len(schemaFields))
	for _, f := range schemaFields {
		f.Rules = set.Rules(f.Name)
		fields = append(fields, f)
	}
	for _, fr := range set.Fields() {
		if !hasField(fields, fr.Name) {
			return nil, fmt.Errorf("examples: rules/schema.yaml has rules for unknown field %q", fr.Name)
		}
	}
	return form.NewDefinition(Schema, fields...)
}

func hasField(fields []form.Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
