package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/shipper"
)

// ShipperDirectory tracks shipper availability.
type ShipperDirectory interface {
	Add(ctx context.Context, s *shipper.Shipper) error
	Get(ctx context.Context, id kernel.UUID) (*shipper.Shipper, error)

	// GetForUpdate locks the shipper row. Callers lock the order first and the
	// shipper second so concurrent accepts never deadlock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipper.Shipper, error)

	UpdateStatus(ctx context.Context, s *shipper.Shipper) error
}
