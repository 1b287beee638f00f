// Package ruleset loads validation rules from YAML documents and compiles
// them into validator.FieldRule values.
//
// A document lists fields in order, each with its rules in evaluation order:
//
//	form: signup
//	fields:
//	  - name: username
//	    rules:
//	      - rule: required
//	        message: Username is required
//	      - rule: minLength
//	        value: 3
//	      - rule: pattern
//	        value: "[a-zA-Z0-9_]+"
//	  - name: confirmPassword
//	    rules:
//	      - rule: crossField
//	        other: password
//	        message: Passwords don't match
//
// Custom, async and cross-field rules name a check from a Registry. The
// default registry knows the format predicates of the validator package;
// applications register their own checks, such as a username lookup.
package ruleset
