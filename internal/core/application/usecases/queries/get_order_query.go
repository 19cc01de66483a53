package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order for a caller who must be its customer, its
// shipper or the owner of its shop.
type GetOrderQuery struct {
	actorID kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(actorID, orderID kernel.UUID) (GetOrderQuery, error) {
	var problems []error
	if err := actorID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("actorID", err))
	}
	if err := orderID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("orderID", err))
	}
	if err := errors.Join(problems...); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{actorID: actorID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) ActorID() kernel.UUID { return q.actorID }
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }
