package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateReviewCommandIsNotConstructed = errors.New(
	"CreateReviewCommand must be created via NewCreateReviewCommand constructor",
)

type CreateReviewCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	orderID    kernel.UUID
	rating     int
	comment    string

	guard guard.ConstructorGuard
}

func NewCreateReviewCommand(customerID, orderID kernel.UUID, rating int, comment string) (CreateReviewCommand, error) {
	var ratingErr error
	if rating < review.MinRating || rating > review.MaxRating {
		ratingErr = errs.NewValueIsOutOfRangeError("rating", rating, review.MinRating, review.MaxRating)
	}
	if err := errors.Join(
		requireID("customerID", customerID),
		requireID("orderID", orderID),
		ratingErr,
	); err != nil {
		return CreateReviewCommand{}, err
	}

	return CreateReviewCommand{
		customerID: customerID,
		orderID:    orderID,
		rating:     rating,
		comment:    comment,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateReviewCommand) Validate() error {
	return c.guard.Validate(ErrCreateReviewCommandIsNotConstructed)
}

func (c CreateReviewCommand) CustomerID() kernel.UUID { return c.customerID }
func (c CreateReviewCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateReviewCommand) Rating() int             { return c.rating }
func (c CreateReviewCommand) Comment() string         { return c.comment }
