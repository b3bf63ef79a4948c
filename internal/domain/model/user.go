package model

import (
	"time"

	"telegram-shopping-list/internal/domain"
)

// User is a domain entity representing a Telegram user in our system.
// ID is assigned by the store (bigserial); zero means "not persisted yet".
type User struct {
	ID           int64
	TelegramID   int64
	Username     string
	RegisteredAt time.Time
	LastActiveAt time.Time
}

func NewUser(tgID int64, username string) (*User, error) {
	if tgID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	u := &User{
		TelegramID:   tgID,
		Username:     username,
		RegisteredAt: time.Now(),
		LastActiveAt: time.Now(),
	}
	return u, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == 0 }
func (u *User) Touch()       { u.LastActiveAt = time.Now() }
