package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go-fridge-tracker/internal/event"
	"go-fridge-tracker/internal/metrics"
	"go-fridge-tracker/internal/model"
	"go-fridge-tracker/internal/repository"
)

const entityCartItem = "cart_item"

// CartService manages the shopping list. Cart changes are not part of the
// change log; they are only announced on the event bus.
type CartService struct {
	cart    *repository.CartRepository
	fridge  *repository.FridgeRepository
	bus     event.Bus
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewCartService(cart *repository.CartRepository, fridge *repository.FridgeRepository, bus event.Bus, m *metrics.Metrics, logger *slog.Logger) *CartService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartService{cart: cart, fridge: fridge, bus: bus, metrics: m, logger: logger}
}

func (s *CartService) Create(ctx context.Context, in model.CartItemInput, actor string) (item model.CartItem, err error) {
	defer func() { s.metrics.Mutation(entityCartItem, string(model.OpAdd), err) }()

	in = normalizeCartInput(in)
	if err := firstError(
		requireField(actor, "user"),
		requireField(in.TypeID, "type_id"),
		requireField(in.Unit, "unit"),
		validateQuantity(in.Quantity),
	); err != nil {
		return model.CartItem{}, err
	}

	item, err = s.cart.Create(ctx, in, actor)
	if err != nil {
		return model.CartItem{}, err
	}

	s.publish(model.OpAdd, item.ID, actor)
	return item, nil
}

// AddFromFridge puts a fridge entry's type, quantity and unit on the shopping list.
func (s *CartService) AddFromFridge(ctx context.Context, fridgeID string, actor string) (model.CartItem, error) {
	if err := firstError(requireField(fridgeID, "id"), requireField(actor, "user")); err != nil {
		return model.CartItem{}, err
	}

	source, err := s.fridge.Get(ctx, fridgeID)
	if err != nil {
		return model.CartItem{}, err
	}

	return s.Create(ctx, model.CartItemInput{TypeID: source.TypeID, Quantity: source.Quantity, Unit: source.Unit}, actor)
}

func (s *CartService) Update(ctx context.Context, id string, in model.CartItemInput, actor string) (item model.CartItem, err error) {
	defer func() { s.metrics.Mutation(entityCartItem, string(model.OpModify), err) }()

	in = normalizeCartInput(in)
	if err := firstError(
		requireField(id, "id"),
		requireField(actor, "user"),
		requireField(in.Unit, "unit"),
		validateQuantity(in.Quantity),
	); err != nil {
		return model.CartItem{}, err
	}

	if err := s.cart.Update(ctx, id, in, actor); err != nil {
		return model.CartItem{}, err
	}

	item, err = s.cart.Get(ctx, id)
	if err != nil {
		return model.CartItem{}, err
	}

	s.publish(model.OpModify, id, actor)
	return item, nil
}

// Delete is idempotent.
func (s *CartService) Delete(ctx context.Context, id string, actor string) (err error) {
	defer func() { s.metrics.Mutation(entityCartItem, string(model.OpDelete), err) }()

	if err := requireField(id, "id"); err != nil {
		return err
	}
	if err := s.cart.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(model.OpDelete, id, actor)
	return nil
}

func (s *CartService) publish(op model.OpType, id string, actor string) {
	s.logger.Debug("cart changed", "op", op, "id", id, "user", actor)
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.New(event.TypeCartChanged, actor, map[string]string{"op": string(op), "id": id}, time.Now()))
}

func normalizeCartInput(in model.CartItemInput) model.CartItemInput {
	in.TypeID = strings.TrimSpace(in.TypeID)
	in.Unit = strings.TrimSpace(in.Unit)
	return in
}
