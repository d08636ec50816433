package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go-fridge-tracker/internal/asset"
	"go-fridge-tracker/internal/changelog"
	"go-fridge-tracker/internal/metrics"
	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/repository"
	"go-fridge-tracker/pkg/apierror"
)

const entityFridgeItem = "fridge_item"

// FridgeService orchestrates fridge entry mutations: photo lifecycle first,
// then the document write, then a best-effort change-log entry.
type FridgeService struct {
	items    *repository.FridgeRepository
	types    *repository.ItemTypeRepository
	assets   *asset.Manager
	recorder *changelog.Recorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewFridgeService(
	items *repository.FridgeRepository,
	types *repository.ItemTypeRepository,
	assets *asset.Manager,
	recorder *changelog.Recorder,
	m *metrics.Metrics,
	logger *slog.Logger,
) *FridgeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FridgeService{items: items, types: types, assets: assets, recorder: recorder, metrics: m, logger: logger}
}

func (s *FridgeService) Create(ctx context.Context, in model.FridgeItemInput, actor string, photo *asset.Upload) (item model.FridgeItem, err error) {
	defer func() { s.metrics.Mutation(entityFridgeItem, string(model.OpAdd), err) }()

	in = normalizeFridgeInput(in)
	if err := firstError(
		requireField(actor, "user"),
		requireField(in.TypeID, "type_id"),
		requireField(in.Unit, "unit"),
		validateQuantity(in.Quantity),
		validateExpiry(in.ExpiryDate),
	); err != nil {
		return model.FridgeItem{}, err
	}

	var ref *model.AssetRef
	if photo.Present() {
		uploaded, err := s.assets.Upload(ctx, photo)
		if err != nil {
			return model.FridgeItem{}, err
		}
		ref = &uploaded
	}

	item, err = s.items.Create(ctx, in, actor, ref)
	if err != nil {
		if ref != nil {
			s.assets.Delete(ctx, ref.Key)
		}
		return model.FridgeItem{}, err
	}

	label := resolveTypeName(ctx, s.types, in.TypeID, s.logger)
	s.record(ctx, model.OpAdd, label, actor, changelog.AddChange(snapshotOf(item)))
	return item, nil
}

// Update merges in into the entry. A present photo replaces the old one, which
// is deleted first; if that delete fails the entry is left untouched.
func (s *FridgeService) Update(ctx context.Context, id string, in model.FridgeItemInput, label string, actor string, photo *asset.Upload) (item model.FridgeItem, err error) {
	defer func() { s.metrics.Mutation(entityFridgeItem, string(model.OpModify), err) }()

	in = normalizeFridgeInput(in)
	label = strings.TrimSpace(label)
	if err := firstError(
		requireField(id, "id"),
		requireField(actor, "user"),
		requireField(label, "type_name"),
		requireField(in.Unit, "unit"),
		validateQuantity(in.Quantity),
		validateExpiry(in.ExpiryDate),
	); err != nil {
		return model.FridgeItem{}, err
	}

	old, err := s.items.Get(ctx, id)
	if err != nil {
		return model.FridgeItem{}, err
	}

	var ref *model.AssetRef
	if photo.Present() {
		if old.HasAsset() {
			if !s.assets.Delete(ctx, old.Asset.Key) {
				s.metrics.AssetDeleteFailed("fridge_update")
				return model.FridgeItem{}, apierror.Wrap(model.ErrAssetDelete, "ASSET_DELETE_FAILED",
					"Failed to delete old photo", old.Asset.Key, http.StatusBadGateway)
			}
		}

		uploaded, err := s.assets.Upload(ctx, photo)
		if err != nil {
			if old.HasAsset() {
				if detachErr := s.items.DetachAsset(ctx, id); detachErr != nil {
					s.logger.Warn("stale photo reference kept", "id", id, "key", old.Asset.Key, "error", detachErr)
				} else {
					s.record(ctx, model.OpModify, label, actor, changelog.Diff(snapshotOf(old), snapshotOf(old), true))
				}
			}
			return model.FridgeItem{}, err
		}
		ref = &uploaded
	}

	if err := s.items.Update(ctx, id, in, ref); err != nil {
		if ref != nil {
			s.assets.Delete(ctx, ref.Key)
		}
		return model.FridgeItem{}, err
	}

	item = old
	item.Quantity, item.Unit, item.ExpiryDate = in.Quantity, in.Unit, in.ExpiryDate
	if ref != nil {
		item.Asset = ref
	}

	s.record(ctx, model.OpModify, label, actor, changelog.Diff(snapshotOf(old), snapshotOf(item), ref != nil))
	return item, nil
}

// Delete removes the entry. A photo that cannot be deleted is logged and left behind.
func (s *FridgeService) Delete(ctx context.Context, id string, label string, actor string) (err error) {
	defer func() { s.metrics.Mutation(entityFridgeItem, string(model.OpDelete), err) }()

	label = strings.TrimSpace(label)
	if err := firstError(
		requireField(id, "id"),
		requireField(actor, "user"),
		requireField(label, "type_name"),
	); err != nil {
		return err
	}

	old, err := s.items.Get(ctx, id)
	if err != nil {
		return err
	}

	if old.HasAsset() && !s.assets.Delete(ctx, old.Asset.Key) {
		s.metrics.AssetDeleteFailed("fridge_delete")
		s.logger.Warn("orphaned photo after fridge item delete", "id", id, "key", old.Asset.Key)
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, model.OpDelete, label, actor, changelog.DeleteChange(snapshotOf(old), old.HasAsset()))
	return nil
}

// record appends a change-log entry. The mutation already stands, so a
// failure here is only logged.
func (s *FridgeService) record(ctx context.Context, op model.OpType, label string, actor string, change changelog.Change) {
	if _, err := s.recorder.Record(ctx, op, label, actor, change); err != nil {
		s.logger.Warn("mutation kept without change log entry", "op", op, "item", label, "error", err)
	}
}

func snapshotOf(item model.FridgeItem) changelog.Snapshot {
	return changelog.Snapshot{Unit: item.Unit, Quantity: item.Quantity}
}

func normalizeFridgeInput(in model.FridgeItemInput) model.FridgeItemInput {
	in.TypeID = strings.TrimSpace(in.TypeID)
	in.Unit = strings.TrimSpace(in.Unit)
	in.ExpiryDate = strings.TrimSpace(in.ExpiryDate)
	return in
}

// resolveTypeName returns the item type's name, or model.UnknownItemType when
// the reference dangles or cannot be read.
func resolveTypeName(ctx context.Context, types *repository.ItemTypeRepository, typeID string, logger *slog.Logger) string {
	itemType, err := types.Get(ctx, typeID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logger.Warn("item type lookup failed", "type_id", typeID, "error", err)
		}
		return model.UnknownItemType
	}
	if itemType.Name == "" {
		return model.UnknownItemType
	}
	return itemType.Name
}
