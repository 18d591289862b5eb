package kernel

import (
	"fmt"

	"schoolstore/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through
// one of the constructor functions. Returned when validating a zero value.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object wrapping github.com/google/uuid. It is used as the
// identifier type for all aggregates and entities in the domain model.
//
// The zero value is invalid; use NewUUID for fresh identifiers or
// UUIDFromString/UUIDFromBytes when reconstructing from external data.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses a UUID from its canonical string representation.
// Returns an error for malformed input. Typically used when reconstructing
// entities from persistence or parsing identifiers from external systems.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16-byte slice. Returns an error for
// slices of the wrong length or for the nil UUID.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value for persistence mapping.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two UUIDs represent the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero (nil) UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
