package service

import (
	"context"
	"time"

	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/repository"
	"go-fridge-tracker/internal/textmatch"
)

// QueryService serves the filtered listings. Fridge and cart entries carry no
// name of their own, so their filter is applied to the resolved item type name.
type QueryService struct {
	types  *repository.ItemTypeRepository
	fridge *repository.FridgeRepository
	cart   *repository.CartRepository
	log    *repository.ChangeLogRepository
	span   time.Duration
	now    func() time.Time
}

func NewQueryService(
	types *repository.ItemTypeRepository,
	fridge *repository.FridgeRepository,
	cart *repository.CartRepository,
	log *repository.ChangeLogRepository,
	span time.Duration,
	now func() time.Time,
) *QueryService {
	if now == nil {
		now = time.Now
	}
	return &QueryService{types: types, fridge: fridge, cart: cart, log: log, span: span, now: now}
}

func (s *QueryService) ListItemTypes(ctx context.Context, filter string) ([]model.ItemType, error) {
	all, err := s.types.List(ctx)
	if err != nil {
		return nil, err
	}

	matcher := textmatch.New(filter)
	if matcher.Empty() {
		return all, nil
	}

	out := make([]model.ItemType, 0, len(all))
	for _, itemType := range all {
		if matcher.Match(itemType.Name) {
			out = append(out, itemType)
		}
	}
	return out, nil
}

func (s *QueryService) ListFridgeItems(ctx context.Context, filter string) ([]model.FridgeItemView, error) {
	names, keep, err := s.resolveTypes(ctx, filter)
	if err != nil {
		return nil, err
	}

	items, err := s.fridge.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.FridgeItemView, 0, len(items))
	for _, item := range items {
		if !keep(item.TypeID) {
			continue
		}
		out = append(out, model.FridgeItemView{FridgeItem: item, TypeName: typeName(names, item.TypeID)})
	}
	return out, nil
}

func (s *QueryService) ListCartItems(ctx context.Context, filter string) ([]model.CartItemView, error) {
	names, keep, err := s.resolveTypes(ctx, filter)
	if err != nil {
		return nil, err
	}

	items, err := s.cart.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.CartItemView, 0, len(items))
	for _, item := range items {
		if !keep(item.TypeID) {
			continue
		}
		out = append(out, model.CartItemView{CartItem: item, TypeName: typeName(names, item.TypeID)})
	}
	return out, nil
}

// ListChangeLog returns entries of the resolved window whose item label
// matches the filter, newest first.
func (s *QueryService) ListChangeLog(ctx context.Context, q model.ChangeLogQuery) ([]model.LogEntry, model.Window, error) {
	window, err := ResolveWindow(q.Start, q.End, s.now(), s.span)
	if err != nil {
		return nil, model.Window{}, err
	}

	entries, err := s.log.Range(ctx, window.Start, window.End)
	if err != nil {
		return nil, model.Window{}, err
	}

	return newestFirst(entries, textmatch.New(q.Filter)), window, nil
}

// resolveTypes loads every item type once and returns the id to name map plus
// a predicate selecting entries whose type name matches filter.
func (s *QueryService) resolveTypes(ctx context.Context, filter string) (map[string]string, func(string) bool, error) {
	all, err := s.types.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	matcher := textmatch.New(filter)
	names := make(map[string]string, len(all))
	matched := make(map[string]struct{})
	for _, itemType := range all {
		names[itemType.ID] = itemType.Name
		if matcher.Match(itemType.Name) {
			matched[itemType.ID] = struct{}{}
		}
	}

	if matcher.Empty() {
		return names, func(string) bool { return true }, nil
	}
	return names, func(typeID string) bool {
		_, ok := matched[typeID]
		return ok
	}, nil
}

func typeName(names map[string]string, typeID string) string {
	if name, ok := names[typeID]; ok && name != "" {
		return name
	}
	return model.UnknownItemType
}
