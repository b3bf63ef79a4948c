package application

import (
	"context"
	"fmt"

	"telegram-shopping-list/internal/domain/model"
	"telegram-shopping-list/internal/domain/ports/repository"
	"telegram-shopping-list/internal/usecase"
)

// BotFacade composes usecases into the operations the Telegram adapter needs.
// Identity resolution always goes through the resolver (normally the
// cache-aside decorator) so handlers never talk to the user store directly.
type BotFacade struct {
	UserUC   usecase.UserUseCase
	ItemUC   usecase.ItemUseCase
	Resolver repository.IdentityResolver
}

func NewBotFacade(userUC usecase.UserUseCase, itemUC usecase.ItemUseCase, resolver repository.IdentityResolver) *BotFacade {
	return &BotFacade{
		UserUC:   userUC,
		ItemUC:   itemUC,
		Resolver: resolver,
	}
}

// HandleStart registers or fetches the user so later interactions resolve fast.
func (b *BotFacade) HandleStart(ctx context.Context, tgID int64, username string) error {
	if _, err := b.UserUC.RegisterOrFetch(ctx, tgID, username); err != nil {
		return fmt.Errorf("register/fetch user: %w", err)
	}
	return nil
}

// ResolveUser maps a Telegram id to the internal user id.
func (b *BotFacade) ResolveUser(ctx context.Context, tgID int64) (int64, error) {
	return b.Resolver.ResolveUserID(ctx, tgID)
}

// ListItems returns the full list for the Telegram user.
func (b *BotFacade) ListItems(ctx context.Context, tgID int64) ([]model.Item, error) {
	userID, err := b.Resolver.ResolveUserID(ctx, tgID)
	if err != nil {
		return nil, err
	}
	return b.ItemUC.List(ctx, userID)
}

// ListUnbought returns only the items not yet marked bought.
func (b *BotFacade) ListUnbought(ctx context.Context, tgID int64) ([]model.Item, error) {
	userID, err := b.Resolver.ResolveUserID(ctx, tgID)
	if err != nil {
		return nil, err
	}
	return b.ItemUC.ListUnbought(ctx, userID)
}

// AddItem resolves the user and appends a trimmed item to their list.
func (b *BotFacade) AddItem(ctx context.Context, tgID int64, name string) (*model.Item, error) {
	userID, err := b.Resolver.ResolveUserID(ctx, tgID)
	if err != nil {
		return nil, err
	}
	return b.ItemUC.Add(ctx, userID, name)
}

func (b *BotFacade) MarkBought(ctx context.Context, itemID int64) error {
	return b.ItemUC.MarkBought(ctx, itemID)
}

func (b *BotFacade) DeleteItem(ctx context.Context, itemID int64) error {
	return b.ItemUC.Delete(ctx, itemID)
}
