package assessment

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("assessment not found")

// Repository guarda sesiones en curso. Las implementaciones devuelven ErrNotFound.
type Repository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Update(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
	ListIdleSince(ctx context.Context, cutoff time.Time) ([]Session, error)
}
