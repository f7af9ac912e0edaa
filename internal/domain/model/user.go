package model

import (
	"time"

	"crystal-petrol-bot/internal/domain"
)

// UserRecord is the durable registration row. One row per Telegram identity;
// duplicate registrations are ignored at the store level.
type UserRecord struct {
	ID         int64
	TelegramID int64
	FullName   string
	Name       string
	Phone      string
	Region     string
	Language   string
	CreatedAt  time.Time
}

func NewUserRecord(tgID int64, fullName, name, phone, region, language string) (*UserRecord, error) {
	if tgID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if name == "" || phone == "" || region == "" || language == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &UserRecord{
		TelegramID: tgID,
		FullName:   fullName,
		Name:       name,
		Phone:      phone,
		Region:     region,
		Language:   language,
		CreatedAt:  time.Now(),
	}, nil
}

// Registered reports whether the row carries a complete registration.
// Rows written by this bot always do; the check mirrors the legacy
// name/phone/region null test.
func (u *UserRecord) Registered() bool {
	return u != nil && u.Name != "" && u.Phone != "" && u.Region != ""
}
