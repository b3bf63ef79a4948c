package telegram

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"telegram-shopping-list/internal/application"
	"telegram-shopping-list/internal/domain/model"
	"telegram-shopping-list/internal/domain/ports/adapter"
	"telegram-shopping-list/internal/infra/state"
)

// fakeBot records every outgoing call so tests can assert on the exact
// messages and keyboard edits a handler produced.
type fakeBot struct {
	SendMessageFunc func(ctx context.Context, params adapter.SendMessageParams) error
	EditMarkupFunc  func(ctx context.Context, params adapter.EditMarkupParams) error

	sent     []adapter.SendMessageParams
	edits    []adapter.EditMarkupParams
	answered []string
}

func (f *fakeBot) SendMessage(ctx context.Context, params adapter.SendMessageParams) error {
	f.sent = append(f.sent, params)
	if f.SendMessageFunc != nil {
		return f.SendMessageFunc(ctx, params)
	}
	return nil
}

func (f *fakeBot) EditMessageMarkup(ctx context.Context, params adapter.EditMarkupParams) error {
	f.edits = append(f.edits, params)
	if f.EditMarkupFunc != nil {
		return f.EditMarkupFunc(ctx, params)
	}
	return nil
}

func (f *fakeBot) AnswerCallback(_ context.Context, callbackID string) error {
	f.answered = append(f.answered, callbackID)
	return nil
}

type mockUserUC struct {
	RegisterOrFetchFunc func(ctx context.Context, tgID int64, username string) (*model.User, error)
}

func (m *mockUserUC) RegisterOrFetch(ctx context.Context, tgID int64, username string) (*model.User, error) {
	if m.RegisterOrFetchFunc != nil {
		return m.RegisterOrFetchFunc(ctx, tgID, username)
	}
	return &model.User{ID: 1, TelegramID: tgID, Username: username}, nil
}

func (m *mockUserUC) GetByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	return &model.User{ID: 1, TelegramID: tgID}, nil
}

type mockItemUC struct {
	ListFunc         func(ctx context.Context, userID int64) ([]model.Item, error)
	ListUnboughtFunc func(ctx context.Context, userID int64) ([]model.Item, error)
	AddFunc          func(ctx context.Context, userID int64, name string) (*model.Item, error)
	MarkBoughtFunc   func(ctx context.Context, itemID int64) error
	DeleteFunc       func(ctx context.Context, itemID int64) error

	marked  []int64
	deleted []int64
}

func (m *mockItemUC) List(ctx context.Context, userID int64) ([]model.Item, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockItemUC) ListUnbought(ctx context.Context, userID int64) ([]model.Item, error) {
	if m.ListUnboughtFunc != nil {
		return m.ListUnboughtFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockItemUC) Add(ctx context.Context, userID int64, name string) (*model.Item, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, userID, name)
	}
	return &model.Item{ID: 1, UserID: userID, Name: name}, nil
}

func (m *mockItemUC) MarkBought(ctx context.Context, itemID int64) error {
	m.marked = append(m.marked, itemID)
	if m.MarkBoughtFunc != nil {
		return m.MarkBoughtFunc(ctx, itemID)
	}
	return nil
}

func (m *mockItemUC) Delete(ctx context.Context, itemID int64) error {
	m.deleted = append(m.deleted, itemID)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, itemID)
	}
	return nil
}

type stubResolver struct {
	id  int64
	err error
}

func (s *stubResolver) ResolveUserID(context.Context, int64) (int64, error) {
	return s.id, s.err
}

type routerFixture struct {
	router *Router
	bot    *fakeBot
	users  *mockUserUC
	items  *mockItemUC
	states *state.MemoryStateRepo
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	bot := &fakeBot{}
	users := &mockUserUC{}
	items := &mockItemUC{}
	states := state.NewMemoryStateRepo()
	facade := application.NewBotFacade(users, items, &stubResolver{id: 1})
	logger := zerolog.Nop()
	return &routerFixture{
		router: NewRouter(bot, facade, states, &logger),
		bot:    bot,
		users:  users,
		items:  items,
		states: states,
	}
}
