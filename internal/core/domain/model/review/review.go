package review

import (
	"errors"
	"time"
	"unicode/utf8"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 2000
	MaxReplyLength   = 1000
)

var (
	ErrOrderNotReviewable = errs.NewConflict("REVIEW_001", "only delivered orders can be reviewed")
	ErrReviewExists       = errs.NewConflict("REVIEW_002", "order has already been reviewed")
	ErrReviewNotFound     = errs.NewNotFound("REVIEW_003", "review not found")
	ErrNotReviewOwner     = errs.NewForbidden("REVIEW_004", "review belongs to another shop")

	ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview or RestoreReview")
)

type Review struct {
	guard guard.ConstructorGuard

	id         kernel.UUID
	orderID    kernel.UUID
	customerID kernel.UUID
	shopID     kernel.UUID
	rating     int
	comment    string
	ownerReply string
	createdAt  time.Time
	updatedAt  time.Time
	repliedAt  *time.Time
}

type Snapshot struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	ShopID     kernel.UUID
	Rating     int
	Comment    string
	OwnerReply string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	RepliedAt  *time.Time
}

// NewReview validates the rating and sanitizes the comment.
func NewReview(id, orderID, customerID, shopID kernel.UUID, rating int, comment string, now time.Time) (*Review, error) {
	return RestoreReview(Snapshot{
		ID:         id,
		OrderID:    orderID,
		CustomerID: customerID,
		ShopID:     shopID,
		Rating:     rating,
		Comment:    Sanitize(comment),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func RestoreReview(s Snapshot) (*Review, error) {
	var problems []error
	for name, id := range map[string]kernel.UUID{
		"id": s.ID, "orderID": s.OrderID, "customerID": s.CustomerID, "shopID": s.ShopID,
	} {
		if err := id.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause(name, err))
		}
	}
	if s.Rating < MinRating || s.Rating > MaxRating {
		problems = append(problems, errs.NewValueIsOutOfRangeError("rating", s.Rating, MinRating, MaxRating))
	}
	if n := utf8.RuneCountInString(s.Comment); n > MaxCommentLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("comment length", n, 0, MaxCommentLength))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Review{
		guard:      guard.NewConstructorGuard(),
		id:         s.ID,
		orderID:    s.OrderID,
		customerID: s.CustomerID,
		shopID:     s.ShopID,
		rating:     s.Rating,
		comment:    s.Comment,
		ownerReply: s.OwnerReply,
		createdAt:  s.CreatedAt,
		updatedAt:  s.UpdatedAt,
		repliedAt:  s.RepliedAt,
	}, nil
}

func (r *Review) Snapshot() Snapshot {
	return Snapshot{
		ID:         r.id,
		OrderID:    r.orderID,
		CustomerID: r.customerID,
		ShopID:     r.shopID,
		Rating:     r.rating,
		Comment:    r.comment,
		OwnerReply: r.ownerReply,
		CreatedAt:  r.createdAt,
		UpdatedAt:  r.updatedAt,
		RepliedAt:  r.repliedAt,
	}
}

func (r *Review) Validate() error {
	if r == nil {
		return ErrReviewIsNotConstructed
	}
	return r.guard.Validate(ErrReviewIsNotConstructed)
}

func (r *Review) ID() kernel.UUID         { return r.id }
func (r *Review) OrderID() kernel.UUID    { return r.orderID }
func (r *Review) CustomerID() kernel.UUID { return r.customerID }
func (r *Review) ShopID() kernel.UUID     { return r.shopID }
func (r *Review) Rating() int             { return r.rating }
func (r *Review) Comment() string         { return r.comment }
func (r *Review) OwnerReply() string      { return r.ownerReply }
func (r *Review) CreatedAt() time.Time    { return r.createdAt }
func (r *Review) RepliedAt() *time.Time   { return r.repliedAt }

// Reply sets or replaces the owner's answer.
func (r *Review) Reply(text string, now time.Time) error {
	reply := Sanitize(text)
	if reply == "" {
		return errs.NewValueIsRequiredError("reply")
	}
	if n := utf8.RuneCountInString(reply); n > MaxReplyLength {
		return errs.NewValueIsOutOfRangeError("reply length", n, 1, MaxReplyLength)
	}
	r.ownerReply = reply
	r.repliedAt = &now
	r.updatedAt = now
	return nil
}
