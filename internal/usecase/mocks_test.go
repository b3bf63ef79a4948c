package usecase

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-shopping-list/internal/domain"
	"telegram-shopping-list/internal/domain/model"
	"telegram-shopping-list/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// noopTxManager runs the function inline without a transaction. The
// repositories used in tests are in-memory, so atomicity is not at stake.
type noopTxManager struct{}

func (noopTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

// memUserRepo is an in-memory UserRepository assigning sequential ids.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User // by internal id

	saveErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: make(map[int64]*model.User)}
}

func (r *memUserRepo) Save(_ context.Context, _ repository.Tx, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByTelegramID(_ context.Context, _ repository.Tx, tgID int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.TelegramID == tgID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, _ repository.Tx, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

// memItemRepo is an in-memory ItemRepository preserving insertion order.
type memItemRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []model.Item

	saveErr error
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{nextID: 1}
}

func (r *memItemRepo) Save(_ context.Context, _ repository.Tx, item *model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, *item)
	return nil
}

func (r *memItemRepo) ListByUser(_ context.Context, _ repository.Tx, userID int64) ([]model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Item
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memItemRepo) ListUnboughtByUser(_ context.Context, _ repository.Tx, userID int64) ([]model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Item
	for _, it := range r.items {
		if it.UserID == userID && !it.Bought {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memItemRepo) MarkBought(_ context.Context, _ repository.Tx, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == itemID {
			r.items[i].Bought = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memItemRepo) Delete(_ context.Context, _ repository.Tx, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == itemID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
