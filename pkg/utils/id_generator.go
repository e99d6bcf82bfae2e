// Package utils provides shared utility functions used across the application.
//
// Go Learning Note ("pkg/" Directory Convention):
// Code under pkg/ is intended to be importable by external projects (unlike
// internal/ which is compiler-enforced private). This is a community convention,
// not a Go language feature.
package utils

import (
	"github.com/google/uuid"
)

// IDGenerator produces opaque, globally unique identifiers. Services take one
// as a dependency so tests can pin the identifiers they expect.
type IDGenerator func() string

// GenerateID creates a new UUID v4 string for use as an entity identifier.
//
// Go Learning Note ("github.com/google/uuid"):
// This library generates RFC 4122 UUIDs. uuid.New() creates a v4 (random) UUID
// like "550e8400-e29b-41d4-a716-446655440000". UUIDs are good for distributed
// systems because they can be generated without coordination (no central counter).
// The collision probability is astronomically low (1 in 2^122).
func GenerateID() string {
	return uuid.New().String()
}

// IsID reports whether s has the shape of an identifier produced by GenerateID.
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
