// Package commands contains the write side of the order core. Every command
// follows the same shape: a constructor that validates input, and a handler
// that validates business rules on a plain read, then repeats the check under
// a row lock inside one unit of work and commits.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Narrow unit of work views. Each handler asks only for the repositories it
// touches, which keeps its mocks small.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ShipperRepoFactory interface {
		ShipperDirectory() ports.ShipperDirectory
	}

	CartRepoFactory interface {
		CartRepository() ports.CartReader
	}

	VoucherRepoFactory interface {
		VoucherRepository() ports.VoucherRepository
		VoucherUsageRepository() ports.VoucherUsageRepository
	}

	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	// OrderUoW covers single-order status changes.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW writes the order and clears the cart group atomically.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		CartRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// DispatchUoW locks an order and a shipper together.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		ShipperRepoFactory
	}

	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	VoucherUoW interface {
		TxManager
		VoucherRepoFactory
	}

	VoucherUoWFactory interface {
		Create() VoucherUoW
	}

	ReviewUoW interface {
		TxManager
		OrderRepoFactory
		ReviewRepoFactory
	}

	ReviewUoWFactory interface {
		Create() ReviewUoW
	}
)
