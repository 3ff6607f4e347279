// Package validation provides argument checks for stream operators.
//
// All helpers report failures as errors wrapping
// pkg/common/errors.ErrInvalidConfiguration, so malformed pipeline
// construction is detected synchronously at activation time and can be
// matched with errors.Is.
package validation
