package ports

import (
	"context"

	"github.com/aretw0/calcgate/pkg/domain"
)

// Journal records finished calculations.
// It is never consulted to answer a calculation request.
type Journal interface {
	// Append stores a record.
	Append(ctx context.Context, rec domain.Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Record, error)
}
