package repositories

import (
	"context"
)

// UnitOfWork groups repository writes. Repositories called with the ctx
// passed to fn take part in the same transaction; a nested Do joins the
// outer one instead of opening its own.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
