package records

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("animal not found")

// Repository es de solo lectura: el catálogo es estático.
type Repository interface {
	// List devuelve el rebaño en el orden del catálogo.
	List(ctx context.Context) ([]AnimalRecord, error)
	Get(ctx context.Context, id string) (AnimalRecord, error)
}
