package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListCustomerOrdersQuery, NewListShopOrdersQuery or NewListShipperOrdersQuery",
)

// OrderScope selects whose orders a list returns.
type OrderScope int

const (
	ScopeCustomer OrderScope = iota + 1
	ScopeShop
	ScopeShipper
)

// ListOrdersQuery pages through one actor's orders, newest first.
//
// Example:
//
//	query, err := NewListCustomerOrdersQuery(customerID, 2, 10, order.Unknown)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
//	fmt.Printf("page %d of %d", page.Page, page.TotalPages)
type ListOrdersQuery struct {
	scope   OrderScope
	actorID kernel.UUID
	page    int
	limit   int
	status  order.Status

	guard guard.ConstructorGuard
}

// NewListCustomerOrdersQuery lists orders placed by customerID. status
// order.Unknown disables the status filter. page and limit are clamped.
func NewListCustomerOrdersQuery(customerID kernel.UUID, page, limit int, status order.Status) (ListOrdersQuery, error) {
	return newListOrdersQuery(ScopeCustomer, customerID, page, limit, status)
}

// NewListShopOrdersQuery lists orders of the shop owned by ownerID.
func NewListShopOrdersQuery(ownerID kernel.UUID, page, limit int, status order.Status) (ListOrdersQuery, error) {
	return newListOrdersQuery(ScopeShop, ownerID, page, limit, status)
}

// NewListShipperOrdersQuery lists orders carried by shipperID.
func NewListShipperOrdersQuery(shipperID kernel.UUID, page, limit int, status order.Status) (ListOrdersQuery, error) {
	return newListOrdersQuery(ScopeShipper, shipperID, page, limit, status)
}

func newListOrdersQuery(scope OrderScope, actorID kernel.UUID, page, limit int, status order.Status) (ListOrdersQuery, error) {
	if err := actorID.Validate(); err != nil {
		return ListOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	page, limit = clampPage(page, limit)
	return ListOrdersQuery{
		scope:   scope,
		actorID: actorID,
		page:    page,
		limit:   limit,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Scope() OrderScope    { return q.scope }
func (q ListOrdersQuery) ActorID() kernel.UUID { return q.actorID }
func (q ListOrdersQuery) Page() int            { return q.page }
func (q ListOrdersQuery) Limit() int           { return q.limit }
func (q ListOrdersQuery) Status() order.Status { return q.status }
