// Package ports defines the contracts between the order core and the
// infrastructure around it: repositories, catalog readers and side channels.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their items.
// Missing orders are reported as *errs.ObjectNotFoundError.
type OrderRepository interface {
	// Add stores a new order and its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes every mutable field of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate reads the order and locks its row until the surrounding
	// transaction ends. Status preconditions checked on the returned
	// aggregate cannot be invalidated by a concurrent writer.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// BackfillShipperIDNull rewrites legacy nil-UUID shipper references to
	// NULL and returns how many orders changed.
	BackfillShipperIDNull(ctx context.Context) (int64, error)
}
