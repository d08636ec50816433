package repository

import (
	"context"
	"fmt"

	"go-fridge-tracker/internal/docstore"
	"go-fridge-tracker/internal/model"
)

type ItemTypeRepository struct {
	store docstore.Store
}

func NewItemTypeRepository(store docstore.Store) *ItemTypeRepository {
	return &ItemTypeRepository{store: store}
}

func (r *ItemTypeRepository) Create(ctx context.Context, in model.ItemTypeInput, asset *model.AssetRef) (model.ItemType, error) {
	doc, err := r.store.Create(ctx, docstore.ItemTypes, merge(itemTypeFields(in), assetFields(asset)))
	if err != nil {
		return model.ItemType{}, fmt.Errorf("create item type: %w", err)
	}
	return decodeItemType(doc)
}

func (r *ItemTypeRepository) Get(ctx context.Context, id string) (model.ItemType, error) {
	doc, err := r.store.Get(ctx, docstore.ItemTypes, id)
	if err != nil {
		return model.ItemType{}, lookupError(err, model.ErrItemTypeNotFound, id, "get item type")
	}
	return decodeItemType(doc)
}

// Update merges name and description. A nil asset leaves the stored photo reference untouched.
func (r *ItemTypeRepository) Update(ctx context.Context, id string, in model.ItemTypeInput, asset *model.AssetRef) error {
	fields := itemTypeFields(in)
	if asset != nil {
		merge(fields, assetFields(asset))
	}
	if err := r.store.Merge(ctx, docstore.ItemTypes, id, fields); err != nil {
		return lookupError(err, model.ErrItemTypeNotFound, id, "update item type")
	}
	return nil
}

// DetachAsset clears the photo reference without touching other fields.
func (r *ItemTypeRepository) DetachAsset(ctx context.Context, id string) error {
	if err := r.store.Merge(ctx, docstore.ItemTypes, id, assetFields(nil)); err != nil {
		return lookupError(err, model.ErrItemTypeNotFound, id, "detach photo")
	}
	return nil
}

func (r *ItemTypeRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, docstore.ItemTypes, id); err != nil {
		return fmt.Errorf("delete item type: %w", err)
	}
	return nil
}

// List returns every decodable item type, oldest first.
func (r *ItemTypeRepository) List(ctx context.Context) ([]model.ItemType, error) {
	docs, err := r.store.List(ctx, docstore.ItemTypes)
	if err != nil {
		return nil, fmt.Errorf("list item types: %w", err)
	}
	return decodeAll(docs, docstore.ItemTypes, decodeItemType), nil
}
