// Package validation wraps go-playground/validator for request bodies.
//
// New returns a validator that names fields by their JSON tags, so a failed
// `max` rule is reported as "max" rather than "Max". Details flattens a
// validator.ValidationErrors into Field/Message pairs that handlers return in
// 400 responses; any other error becomes a single entry without a field.
//
// Limit updates, operator craft requests and chat posts are validated here
// before they reach their services.
package validation
