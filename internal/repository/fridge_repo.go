package repository

import (
	"context"
	"fmt"

	"go-fridge-tracker/internal/docstore"
	"go-fridge-tracker/internal/model"
)

type FridgeRepository struct {
	store docstore.Store
}

func NewFridgeRepository(store docstore.Store) *FridgeRepository {
	return &FridgeRepository{store: store}
}

func (r *FridgeRepository) Create(ctx context.Context, in model.FridgeItemInput, user string, asset *model.AssetRef) (model.FridgeItem, error) {
	fields := merge(fridgeItemFields(in), assetFields(asset))
	fields["type_id"] = in.TypeID
	fields["user"] = user

	doc, err := r.store.Create(ctx, docstore.FridgeItems, fields)
	if err != nil {
		return model.FridgeItem{}, fmt.Errorf("create fridge item: %w", err)
	}
	return decodeFridgeItem(doc)
}

func (r *FridgeRepository) Get(ctx context.Context, id string) (model.FridgeItem, error) {
	doc, err := r.store.Get(ctx, docstore.FridgeItems, id)
	if err != nil {
		return model.FridgeItem{}, lookupError(err, model.ErrFridgeItemNotFound, id, "get fridge item")
	}
	return decodeFridgeItem(doc)
}

// Update merges quantity, unit and expiry date. The type is fixed at creation.
// A nil asset leaves the stored photo reference untouched.
func (r *FridgeRepository) Update(ctx context.Context, id string, in model.FridgeItemInput, asset *model.AssetRef) error {
	fields := fridgeItemFields(in)
	if asset != nil {
		merge(fields, assetFields(asset))
	}
	if err := r.store.Merge(ctx, docstore.FridgeItems, id, fields); err != nil {
		return lookupError(err, model.ErrFridgeItemNotFound, id, "update fridge item")
	}
	return nil
}

// DetachAsset clears the photo reference without touching other fields.
func (r *FridgeRepository) DetachAsset(ctx context.Context, id string) error {
	if err := r.store.Merge(ctx, docstore.FridgeItems, id, assetFields(nil)); err != nil {
		return lookupError(err, model.ErrFridgeItemNotFound, id, "detach photo")
	}
	return nil
}

func (r *FridgeRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.FridgeItems, id); err != nil {
		return fmt.Errorf("delete fridge item: %w", err)
	}
	return nil
}

func (r *FridgeRepository) List(ctx context.Context) ([]model.FridgeItem, error) {
	docs, err := r.store.List(ctx, docstore.FridgeItems)
	if err != nil {
		return nil, fmt.Errorf("list fridge items: %w", err)
	}
	return decodeAll(docs, docstore.FridgeItems, decodeFridgeItem), nil
}
