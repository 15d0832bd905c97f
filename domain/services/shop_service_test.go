package services

import (
	"context"
	"testing"

	"guildledger/domain"
	"guildledger/domain/entities"
	"guildledger/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestShopService() (*ShopService, *testhelpers.MockUnitOfWorkFactory) {
	factory := testhelpers.NewMockUnitOfWorkFactory()
	ledger := NewLedgerService(factory)
	return NewShopService(factory, ledger), factory
}

func TestShopService_AddItem(t *testing.T) {
	svc, factory := newTestShopService()
	uow := factory.UoW

	uow.ShopItemRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.ShopItem")).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.ShopItem).ID = 5
	}).Return(nil)

	item, err := svc.AddItem(context.Background(), 42, ShopItemInput{Name: " Healing Potion ", Cost: 30, Icon: "potion"})
	require.NoError(t, err)

	assert.Equal(t, int64(5), item.ID)
	assert.Equal(t, "Healing Potion", item.Name)
	assert.Equal(t, 1, uow.Commits)
}

func TestShopService_AddItem_Validation(t *testing.T) {
	svc, _ := newTestShopService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 42, ShopItemInput{Name: "", Cost: 30})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddItem(ctx, 42, ShopItemInput{Name: "Potion", Cost: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestShopService_ListItems_OrderedByCost(t *testing.T) {
	svc, factory := newTestShopService()

	catalog := []*entities.ShopItem{
		{ID: 1, Name: "Bread", Cost: 5},
		{ID: 2, Name: "Healing Potion", Cost: 30},
	}
	factory.UoW.ShopItemRepo.On("ListByCost", mock.Anything).Return(catalog, nil)

	items, err := svc.ListItems(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, catalog, items)
}

func TestShopService_PurchaseItem_DebitsThroughLedger(t *testing.T) {
	svc, factory := newTestShopService()
	uow := factory.UoW

	item := &entities.ShopItem{ID: 5, Name: "Healing Potion", Cost: 30}
	character := &entities.Character{ID: 1, Name: "Aldric", Gold: 100, Level: 1}

	uow.ShopItemRepo.On("GetByID", mock.Anything, int64(5)).Return(item, nil)
	uow.CharacterRepo.On("GetForUpdate", mock.Anything, []int64{1}).Return([]*entities.Character{character}, nil)
	uow.UsageLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.UsageLog")).Return(nil)
	uow.CharacterRepo.On("UpdateProgress", mock.Anything, int64(1), int64(70), int64(0), 1).Return(nil)

	err := svc.PurchaseItem(context.Background(), 42, 1, 5, "principal-buyer")
	require.NoError(t, err)
	assert.Equal(t, int64(70), character.Gold)
}

func TestShopService_PurchaseItem_UnknownItem(t *testing.T) {
	svc, factory := newTestShopService()
	factory.UoW.ShopItemRepo.On("GetByID", mock.Anything, int64(5)).Return(nil, nil)

	err := svc.PurchaseItem(context.Background(), 42, 1, 5, "principal-buyer")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	factory.UoW.UsageLogRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestShopService_DeleteItem(t *testing.T) {
	svc, factory := newTestShopService()
	factory.UoW.ShopItemRepo.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := svc.DeleteItem(context.Background(), 42, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, factory.UoW.Commits)
}
