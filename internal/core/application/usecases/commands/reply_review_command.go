package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrReplyReviewCommandIsNotConstructed = errors.New(
	"ReplyReviewCommand must be created via NewReplyReviewCommand constructor",
)

type ReplyReviewCommand struct { //nolint:recvcheck //using for validation
	ownerID  kernel.UUID
	reviewID kernel.UUID
	reply    string

	guard guard.ConstructorGuard
}

// NewReplyReviewCommand leaves reply checks to the review itself, which
// sanitizes before measuring.
func NewReplyReviewCommand(ownerID, reviewID kernel.UUID, reply string) (ReplyReviewCommand, error) {
	if err := errors.Join(
		requireID("ownerID", ownerID),
		requireID("reviewID", reviewID),
	); err != nil {
		return ReplyReviewCommand{}, err
	}

	return ReplyReviewCommand{
		ownerID:  ownerID,
		reviewID: reviewID,
		reply:    reply,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReplyReviewCommand) Validate() error {
	return c.guard.Validate(ErrReplyReviewCommandIsNotConstructed)
}

func (c ReplyReviewCommand) OwnerID() kernel.UUID  { return c.ownerID }
func (c ReplyReviewCommand) ReviewID() kernel.UUID { return c.reviewID }
func (c ReplyReviewCommand) Reply() string         { return c.reply }
