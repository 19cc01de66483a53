package reviewrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/review"

	"github.com/google/uuid"
)

type ReviewDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null"`
	ShopID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating     int       `gorm:"type:smallint;not null"`
	Comment    string    `gorm:"type:text"`
	OwnerReply string    `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	RepliedAt  *time.Time
}

func (ReviewDTO) TableName() string {
	return "reviews"
}

func fromDomain(r *review.Review) ReviewDTO {
	s := r.Snapshot()
	return ReviewDTO{
		ID:         s.ID.Bytes(),
		OrderID:    s.OrderID.Bytes(),
		CustomerID: s.CustomerID.Bytes(),
		ShopID:     s.ShopID.Bytes(),
		Rating:     s.Rating,
		Comment:    s.Comment,
		OwnerReply: s.OwnerReply,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		RepliedAt:  s.RepliedAt,
	}
}

func toDomain(dto ReviewDTO) (*review.Review, error) {
	return review.RestoreReview(review.Snapshot{
		ID:         kernel.FromGoogle(dto.ID),
		OrderID:    kernel.FromGoogle(dto.OrderID),
		CustomerID: kernel.FromGoogle(dto.CustomerID),
		ShopID:     kernel.FromGoogle(dto.ShopID),
		Rating:     dto.Rating,
		Comment:    dto.Comment,
		OwnerReply: dto.OwnerReply,
		CreatedAt:  dto.CreatedAt,
		UpdatedAt:  dto.UpdatedAt,
		RepliedAt:  dto.RepliedAt,
	})
}
