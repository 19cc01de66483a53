package order

import "marketplace/internal/pkg/errs"

var (
	ErrOrderNotFound              = errs.NewNotFound("ORDER_001", "order not found")
	ErrCartEmpty                  = errs.NewNotFound("ORDER_002", "cart has no items for this shop")
	ErrNotOrderOwner              = errs.NewForbidden("ORDER_006", "order does not belong to the caller")
	ErrCancellationNotAllowed     = errs.NewConflict("ORDER_007", "order can no longer be cancelled")
	ErrPaymentRequired            = errs.NewConflict("ORDER_008", "order must be paid before confirmation")
	ErrOrderNotAvailableForPickup = errs.NewConflict("ORDER_009", "order is not available for pickup")
	ErrInvalidTransition          = errs.NewConflict("ORDER_011", "invalid order status transition")
	ErrShipperNotAssigned         = errs.NewForbidden("ORDER_012", "order is not assigned to this shipper")
	ErrConcurrentModification     = errs.NewConflict("ORDER_014", "order was modified concurrently, retry")
	ErrCartChanged                = errs.NewConflict("ORDER_015", "cart changed during checkout")
)
