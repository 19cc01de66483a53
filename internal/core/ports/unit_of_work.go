package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories it hands out
// run inside the transaction opened by Begin, or on the plain connection
// before Begin is called.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ShipperDirectory() ShipperDirectory
	VoucherRepository() VoucherRepository
	VoucherUsageRepository() VoucherUsageRepository
	ReviewRepository() ReviewRepository
	CartRepository() CartReader
}
