package model

import (
	"time"

	"crystal-petrol-bot/internal/domain"
)

// RatingRecord is an append-only service rating, 1 to 5 stars.
type RatingRecord struct {
	ID         int64
	TelegramID int64
	FullName   string
	Stars      int
	CreatedAt  time.Time
}

func NewRatingRecord(tgID int64, fullName string, stars int) (*RatingRecord, error) {
	if tgID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if stars < 1 || stars > 5 {
		return nil, domain.ErrInvalidArgument
	}
	return &RatingRecord{
		TelegramID: tgID,
		FullName:   fullName,
		Stars:      stars,
		CreatedAt:  time.Now(),
	}, nil
}
