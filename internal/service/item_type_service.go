package service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go-fridge-tracker/internal/asset"
	"go-fridge-tracker/internal/event"
	"go-fridge-tracker/internal/metrics"
	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/repository"
	"go-fridge-tracker/pkg/apierror"
)

const entityItemType = "item_type"

type ItemTypeService struct {
	types   *repository.ItemTypeRepository
	assets  *asset.Manager
	bus     event.Bus
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewItemTypeService(types *repository.ItemTypeRepository, assets *asset.Manager, bus event.Bus, m *metrics.Metrics, logger *slog.Logger) *ItemTypeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemTypeService{types: types, assets: assets, bus: bus, metrics: m, logger: logger}
}

func (s *ItemTypeService) Create(ctx context.Context, in model.ItemTypeInput, actor string, photo *asset.Upload) (itemType model.ItemType, err error) {
	defer func() { s.metrics.Mutation(entityItemType, string(model.OpAdd), err) }()

	in = normalizeItemTypeInput(in)
	if err := firstError(requireField(actor, "user"), requireField(in.Name, "name")); err != nil {
		return model.ItemType{}, err
	}

	var ref *model.AssetRef
	if photo.Present() {
		uploaded, err := s.assets.Upload(ctx, photo)
		if err != nil {
			return model.ItemType{}, err
		}
		ref = &uploaded
	}

	itemType, err = s.types.Create(ctx, in, ref)
	if err != nil {
		if ref != nil {
			s.assets.Delete(ctx, ref.Key)
		}
		return model.ItemType{}, err
	}

	s.publish(model.OpAdd, itemType.ID, actor)
	return itemType, nil
}

// Update follows the same delete-before-upload rule as fridge entries.
func (s *ItemTypeService) Update(ctx context.Context, id string, in model.ItemTypeInput, actor string, photo *asset.Upload) (itemType model.ItemType, err error) {
	defer func() { s.metrics.Mutation(entityItemType, string(model.OpModify), err) }()

	in = normalizeItemTypeInput(in)
	if err := firstError(requireField(id, "id"), requireField(actor, "user"), requireField(in.Name, "name")); err != nil {
		return model.ItemType{}, err
	}

	old, err := s.types.Get(ctx, id)
	if err != nil {
		return model.ItemType{}, err
	}

	var ref *model.AssetRef
	if photo.Present() {
		if old.Asset != nil {
			if !s.assets.Delete(ctx, old.Asset.Key) {
				s.metrics.AssetDeleteFailed("item_type_update")
				return model.ItemType{}, apierror.Wrap(model.ErrAssetDelete, "ASSET_DELETE_FAILED",
					"Failed to delete old photo", old.Asset.Key, http.StatusBadGateway)
			}
		}

		uploaded, err := s.assets.Upload(ctx, photo)
		if err != nil {
			if old.Asset != nil {
				if detachErr := s.types.DetachAsset(ctx, id); detachErr != nil {
					s.logger.Warn("stale photo reference kept", "id", id, "key", old.Asset.Key, "error", detachErr)
				} else {
					s.publish(model.OpModify, id, actor)
				}
			}
			return model.ItemType{}, err
		}
		ref = &uploaded
	}

	if err := s.types.Update(ctx, id, in, ref); err != nil {
		if ref != nil {
			s.assets.Delete(ctx, ref.Key)
		}
		return model.ItemType{}, err
	}

	itemType = old
	itemType.Name, itemType.Description = in.Name, in.Description
	if ref != nil {
		itemType.Asset = ref
	}

	s.publish(model.OpModify, id, actor)
	return itemType, nil
}

// Delete removes the item type and, best effort, its photo. Entries that
// reference it are kept and resolve to the unknown type.
func (s *ItemTypeService) Delete(ctx context.Context, id string, actor string) (err error) {
	defer func() { s.metrics.Mutation(entityItemType, string(model.OpDelete), err) }()

	if err := firstError(requireField(id, "id"), requireField(actor, "user")); err != nil {
		return err
	}

	old, err := s.types.Get(ctx, id)
	if err != nil {
		return err
	}

	if old.Asset != nil && !s.assets.Delete(ctx, old.Asset.Key) {
		s.metrics.AssetDeleteFailed("item_type_delete")
		s.logger.Warn("orphaned photo after item type delete", "id", id, "key", old.Asset.Key)
	}

	if err := s.types.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(model.OpDelete, id, actor)
	return nil
}

func (s *ItemTypeService) publish(op model.OpType, id string, actor string) {
	s.logger.Info("item type changed", "op", op, "id", id, "user", actor)
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.New(event.TypeItemTypeChanged, actor, map[string]string{"op": string(op), "id": id}, time.Now()))
}

func normalizeItemTypeInput(in model.ItemTypeInput) model.ItemTypeInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}
