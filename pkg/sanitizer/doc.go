// Package sanitizer provides input normalization for user supplied text.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Invalid input is handled gracefully, typically
// by returning empty strings or empty slices rather than errors.
package sanitizer
