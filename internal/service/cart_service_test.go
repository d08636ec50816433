package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-fridge-tracker/internal/event"
	"go-fridge-tracker/internal/model"
)

func TestCartLifecycleIsNotLogged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, nil)
	events, unsubscribe := f.bus.Subscribe()
	defer unsubscribe()

	item, err := f.cartSvc.Create(ctx, model.CartItemInput{TypeID: "t", Quantity: 2, Unit: "l"}, "alice")
	require.NoError(t, err)

	updated, err := f.cartSvc.Update(ctx, item.ID, model.CartItemInput{Quantity: 3, Unit: "l"}, "bob")
	require.NoError(t, err)
	assert.Equal(t, 3.0, updated.Quantity)
	assert.Equal(t, "bob", updated.User)
	assert.Equal(t, "t", updated.TypeID)

	require.NoError(t, f.cartSvc.Delete(ctx, item.ID, "bob"))
	require.NoError(t, f.cartSvc.Delete(ctx, item.ID, "bob"))

	assert.Empty(t, f.entries(t))
	require.Len(t, events, 4)
	assert.Equal(t, event.TypeCartChanged, (<-events).Type)
}

func TestCartUpdateMissingAndInvalid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.cartSvc.Update(ctx, "missing", model.CartItemInput{Quantity: 1, Unit: "l"}, "bob")
	require.ErrorIs(t, err, model.ErrCartItemNotFound)

	_, err = f.cartSvc.Create(ctx, model.CartItemInput{TypeID: "t", Quantity: -2, Unit: "l"}, "bob")
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestCartAddFromFridge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t, nil)

	source, err := f.fridgeSvc.Create(ctx, model.FridgeItemInput{TypeID: "butter", Quantity: 250, Unit: "g"}, "alice", nil)
	require.NoError(t, err)

	item, err := f.cartSvc.AddFromFridge(ctx, source.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, "butter", item.TypeID)
	assert.Equal(t, 250.0, item.Quantity)
	assert.Equal(t, "g", item.Unit)
	assert.Equal(t, "bob", item.User)

	_, err = f.cartSvc.AddFromFridge(ctx, "missing", "bob")
	require.ErrorIs(t, err, model.ErrFridgeItemNotFound)
}
