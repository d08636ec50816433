package repository

import (
	"context"
	"fmt"

	"go-fridge-tracker/internal/docstore"
	"go-fridge-tracker/internal/model"
)

type CartRepository struct {
	store docstore.Store
}

func NewCartRepository(store docstore.Store) *CartRepository {
	return &CartRepository{store: store}
}

func (r *CartRepository) Create(ctx context.Context, in model.CartItemInput, user string) (model.CartItem, error) {
	doc, err := r.store.Create(ctx, docstore.Cart, docstore.Fields{
		"schema":   schemaVersion,
		"type_id":  in.TypeID,
		"quantity": in.Quantity,
		"unit":     in.Unit,
		"user":     user,
	})
	if err != nil {
		return model.CartItem{}, fmt.Errorf("create cart item: %w", err)
	}
	return decodeCartItem(doc)
}

func (r *CartRepository) Get(ctx context.Context, id string) (model.CartItem, error) {
	doc, err := r.store.Get(ctx, docstore.Cart, id)
	if err != nil {
		return model.CartItem{}, lookupError(err, model.ErrCartItemNotFound, id, "get cart item")
	}
	return decodeCartItem(doc)
}

// Update merges quantity and unit and records user as the last editor.
func (r *CartRepository) Update(ctx context.Context, id string, in model.CartItemInput, user string) error {
	err := r.store.Merge(ctx, docstore.Cart, id, docstore.Fields{
		"schema":   schemaVersion,
		"quantity": in.Quantity,
		"unit":     in.Unit,
		"user":     user,
	})
	if err != nil {
		return lookupError(err, model.ErrCartItemNotFound, id, "update cart item")
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.Cart, id); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) List(ctx context.Context) ([]model.CartItem, error) {
	docs, err := r.store.List(ctx, docstore.Cart)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return decodeAll(docs, docstore.Cart, decodeCartItem), nil
}
