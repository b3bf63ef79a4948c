package model

import (
	"strings"
	"time"

	"telegram-shopping-list/internal/domain"
)

// Item is a single shopping-list entry owned by exactly one user.
type Item struct {
	ID        int64
	UserID    int64
	Name      string
	Bought    bool
	CreatedAt time.Time
}

// NewItem trims the name and rejects empty input. The Bought flag
// starts false; only the mark-bought action flips it.
func NewItem(userID int64, name string) (*Item, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyItemName
	}
	return &Item{
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}
