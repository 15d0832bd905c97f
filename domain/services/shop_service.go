package services

import (
	"context"
	"fmt"
	"strings"

	"guildledger/application"
	"guildledger/domain"
	"guildledger/domain/entities"

	log "github.com/sirupsen/logrus"
)

// ShopService manages the per-guild item catalog and fronts purchases.
// Catalog rows carry no balances; the actual debit goes through the ledger.
type ShopService struct {
	uowFactory application.UnitOfWorkFactory
	ledger     *LedgerService
}

// NewShopService creates a new shop service
func NewShopService(uowFactory application.UnitOfWorkFactory, ledger *LedgerService) *ShopService {
	return &ShopService{
		uowFactory: uowFactory,
		ledger:     ledger,
	}
}

// ShopItemInput carries the caller-editable fields of a catalog item
type ShopItemInput struct {
	Name        string
	Cost        int64
	Icon        string
	Description string
	IsOneTime   bool
}

func (in *ShopItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("item name is required")
	}
	if in.Cost <= 0 {
		return domain.NewValidationError("item cost must be positive, got %d", in.Cost)
	}
	return nil
}

// AddItem adds an item to the guild's catalog
func (s *ShopService) AddItem(ctx context.Context, guildID int64, input ShopItemInput) (*entities.ShopItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	item := &entities.ShopItem{
		Name:        strings.TrimSpace(input.Name),
		Cost:        input.Cost,
		Icon:        input.Icon,
		Description: input.Description,
		IsOneTime:   input.IsOneTime,
	}
	if err := uow.ShopItemRepository().Create(ctx, item); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"guild_id": guildID,
		"item_id":  item.ID,
		"cost":     item.Cost,
	}).Info("Shop item added")

	return item, nil
}

// GetItem retrieves one catalog item
func (s *ShopService) GetItem(ctx context.Context, guildID, itemID int64) (*entities.ShopItem, error) {
	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	item, err := uow.ShopItemRepository().GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("shop item %d: %w", itemID, domain.ErrNotFound)
	}

	return item, nil
}

// ListItems returns the guild's catalog ordered cheapest first
func (s *ShopService) ListItems(ctx context.Context, guildID int64) ([]*entities.ShopItem, error) {
	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.ShopItemRepository().ListByCost(ctx)
}

// UpdateItem rewrites a catalog item's fields
func (s *ShopService) UpdateItem(ctx context.Context, guildID, itemID int64, input ShopItemInput) (*entities.ShopItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	item, err := uow.ShopItemRepository().GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("shop item %d: %w", itemID, domain.ErrNotFound)
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Cost = input.Cost
	item.Icon = input.Icon
	item.Description = input.Description
	item.IsOneTime = input.IsOneTime
	if err := uow.ShopItemRepository().Update(ctx, item); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem removes an item from the catalog. Usage log entries keep their
// item name snapshots.
func (s *ShopService) DeleteItem(ctx context.Context, guildID, itemID int64) error {
	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ShopItemRepository().Delete(ctx, itemID); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guild_id": guildID,
		"item_id":  itemID,
	}).Info("Shop item deleted")

	return nil
}

// PurchaseItem resolves a catalog item and debits the character through the
// ledger at the item's current price.
func (s *ShopService) PurchaseItem(ctx context.Context, guildID, characterID, itemID int64, principalID string) error {
	item, err := s.GetItem(ctx, guildID, itemID)
	if err != nil {
		return err
	}

	return s.ledger.SpendGold(ctx, guildID, characterID, item.Name, item.Cost, principalID)
}
