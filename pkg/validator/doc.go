// Package validator implements the field validation rule engine used by the
// form package.
//
// A field carries an ordered list of FieldRule values. Each rule has a Kind
// (required, pattern, min, max, minLength, maxLength, custom, async,
// crossField), its parameters, a failure message and a translation key.
// EvaluateField runs the rules in declaration order and reports the first
// failure as a Result. The engine is stateless and never mutates the value
// it inspects.
//
// # Usage
//
//	rules := []validator.FieldRule{
//	    validator.Required("Email is required"),
//	    validator.Pattern(validator.EmailPattern, "Invalid email address"),
//	}
//	res := validator.EvaluateField(ctx, "email", validator.String("a@b"), rules, nil)
//	if !res.Valid {
//	    fmt.Println(res.Message) // Invalid email address
//	}
//
// Cross-field rules read sibling values through a Lookup:
//
//	confirm := validator.Equals("password", "Passwords do not match")
//	validator.EvaluateField(ctx, "confirmPassword", v, []validator.FieldRule{confirm},
//	    validator.Values{"password": validator.String("Secret12!")})
//
// # Messages
//
// A rule's own message always wins. Without one, custom predicates
// contribute their error text, and the remaining kinds fall back to a
// default built from the field label ("Confirm password is required").
//
// # Error Handling
//
// Invalid results convert to ValidationError, and Report.Err returns
// ValidationErrors, which implements error and works with errors.As.
// Malformed regular expressions in Pattern are programming errors and panic;
// use CompilePattern for expressions loaded from data.
package validator
