package model

import (
	"errors"

	"github.com/google/uuid"
)

// Entity is implemented by pointers to the menu models that share the
// name-unique create/read/update/delete lifecycle (dishes, promotions, leaders).
type Entity[T any] interface {
	*T
	GetID() uuid.UUID
	GetName() string
	// Preserve restores server-owned fields from prev after client fields were merged in.
	Preserve(prev *T)
}

// RemovalSummary reports the outcome of a delete operation.
type RemovalSummary struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deleted_count"`
}

// Removed builds a RemovalSummary for n deleted records.
func Removed(n int64) RemovalSummary {
	return RemovalSummary{Acknowledged: true, DeletedCount: n}
}

// ErrNegativePrice is returned by Validate when a monetary value is below zero.
var ErrNegativePrice = errors.New("price must not be negative")
