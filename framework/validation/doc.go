// Package validation provides Laravel-compatible input validation.
//
// # Overview
//
// The validation package mirrors Laravel's Validator facade and its rule syntax.
// Rules are expressed as pipe-separated strings on a map of field names, or
// as an ordered RuleSet when the declaration order matters.
//
// # Basic Usage
//
//	v := validation.Make(map[string]string{
//	    "name":  "Alice",
//	    "email": "alice@example.com",
//	}, validation.Rules{
//	    "name":  "required|min:2|max:100",
//	    "email": "required|email",
//	})
//
//	if v.Fails() {
//	    // v.Errors() returns *Errors with Bag map[string][]string
//	    // JSON: {"errors": {"field": ["message1", "message2"]}}
//	}
//
// # Messages
//
// Messages come from a Translator (the bundled English catalog by default)
// and can be overridden per field or rule:
//
//	v := validation.Make(data, rules,
//	    validation.WithMessages(map[string]string{"email.required": "We need your email."}),
//	    validation.WithAttributes(map[string]string{"dob": "date of birth"}),
//	)
//
// ResolveMessage and ApplyReplacements are exported so that client-side rule
// generation (package jsvalidation) renders the exact wording the server
// would. WithOverlay lets it install fake input for the duration of one
// message resolution.
//
// # Size rules
//
// min, max, size, between, gt, gte, lt and lte measure a value by the
// field's attribute type: numeric value when the field has a numeric or
// integer rule, item count for array fields (comma-separated), kilobytes
// for uploads, characters otherwise.
//
// # Available Rules
//
//   - presence: required, required_if, required_unless, required_with,
//     required_with_all, required_without, required_without_all, filled,
//     present, accepted, nullable, sometimes
//   - type: string, numeric, integer, boolean, email, url, file, image, mimes
//   - size: min, max, size, between, gt, gte, lt, lte, digits, digits_between
//   - comparison: confirmed, same, different, in, not_in
//   - pattern: alpha, alpha_num, alpha_dash, regex
package validation
