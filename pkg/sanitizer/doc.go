// Package sanitizer normalizes free-form input before it is validated and
// stored.
//
// All functions are idempotent. Input that cannot be normalized is returned
// trimmed but otherwise unchanged so that validation reports it.
package sanitizer
