package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/review"
)

type ReviewRepository interface {
	// Add fails with ErrDuplicate if the order already has a review.
	Add(ctx context.Context, r *review.Review) error
	Update(ctx context.Context, r *review.Review) error
	Get(ctx context.Context, id kernel.UUID) (*review.Review, error)
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)
}
