package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/stylehub/internal/cart"
	"github.com/Skotchmaster/stylehub/internal/catalog"
	"github.com/Skotchmaster/stylehub/internal/events"
	"github.com/Skotchmaster/stylehub/internal/models"
	"github.com/Skotchmaster/stylehub/internal/pricing"
	"github.com/Skotchmaster/stylehub/internal/store"
)

type CartService struct {
	Store     store.Store
	Products  catalog.Provider
	Publisher events.Publisher
}

type CartView struct {
	Items   []models.CartLineItem `json:"items"`
	Count   int                   `json:"count"`
	Summary pricing.Summary       `json:"summary"`
}

type AddToCartRequest struct {
	ProductID int
	Size      string
	Color     string
	Quantity  int
}

func (s *CartService) open(ctx context.Context, sessionID string) (*cart.Ledger, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id must not be empty: %w", ErrValidation)
	}
	return cart.Load(ctx, store.Scoped(s.Store, sessionID))
}

func view(l *cart.Ledger) CartView {
	items := l.Items()
	return CartView{Items: items, Count: l.Count(), Summary: pricing.Calculate(items)}
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (CartView, error) {
	l, err := s.open(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	return view(l), nil
}

// AddToCart checks the product exists, is in stock and offers the chosen
// size and color before adding it to the session's cart.
func (s *CartService) AddToCart(ctx context.Context, sessionID string, req AddToCartRequest) (CartView, error) {
	if req.ProductID <= 0 {
		return CartView{}, fmt.Errorf("product id must be positive: %w", ErrValidation)
	}
	switch {
	case req.Quantity < 1:
		req.Quantity = 1
	case req.Quantity > cart.MaxQuantity:
		req.Quantity = cart.MaxQuantity
	}

	p, err := s.Products.GetByID(ctx, req.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		return CartView{}, fmt.Errorf("product %d: %w", req.ProductID, ErrNotFound)
	}
	if err != nil {
		return CartView{}, err
	}
	if !p.InStock {
		return CartView{}, fmt.Errorf("product %d is out of stock: %w", p.ID, ErrValidation)
	}
	if len(p.Sizes) > 0 && !p.HasSize(req.Size) {
		return CartView{}, fmt.Errorf("size %q is not offered for product %d: %w", req.Size, p.ID, ErrValidation)
	}
	if len(p.Colors) > 0 && !p.HasColor(req.Color) {
		return CartView{}, fmt.Errorf("color %q is not offered for product %d: %w", req.Color, p.ID, ErrValidation)
	}

	l, err := s.open(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	if err := l.AddItem(ctx, p, req.Size, req.Color, req.Quantity); err != nil {
		return CartView{}, fmt.Errorf("save cart: %w", err)
	}

	publish(ctx, s.Publisher, events.TopicCart, events.Event{
		Type:      events.CartItemAdded,
		SessionID: sessionID,
		ProductID: p.ID,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
		At:        time.Now().UTC(),
	})
	return view(l), nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, key models.LineKey, quantity int) (CartView, error) {
	l, err := s.open(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	if err := l.UpdateQuantity(ctx, key, quantity); err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			return CartView{}, fmt.Errorf("cart line %d/%s/%s: %w", key.ProductID, key.Size, key.Color, ErrNotFound)
		}
		return CartView{}, fmt.Errorf("save cart: %w", err)
	}

	line, _ := l.Line(key)
	publish(ctx, s.Publisher, events.TopicCart, events.Event{
		Type:      events.CartItemUpdated,
		SessionID: sessionID,
		ProductID: key.ProductID,
		Size:      key.Size,
		Color:     key.Color,
		Quantity:  line.Quantity,
		At:        time.Now().UTC(),
	})
	return view(l), nil
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, key models.LineKey) (CartView, error) {
	l, err := s.open(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	_, existed := l.Line(key)
	if err := l.RemoveItem(ctx, key); err != nil {
		return CartView{}, fmt.Errorf("save cart: %w", err)
	}

	if existed {
		publish(ctx, s.Publisher, events.TopicCart, events.Event{
			Type:      events.CartItemRemoved,
			SessionID: sessionID,
			ProductID: key.ProductID,
			Size:      key.Size,
			Color:     key.Color,
			At:        time.Now().UTC(),
		})
	}
	return view(l), nil
}

func (s *CartService) RemoveProduct(ctx context.Context, sessionID string, productID int) (CartView, error) {
	l, err := s.open(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	before := l.Len()
	if err := l.RemoveProduct(ctx, productID); err != nil {
		return CartView{}, fmt.Errorf("save cart: %w", err)
	}

	if l.Len() != before {
		publish(ctx, s.Publisher, events.TopicCart, events.Event{
			Type:      events.CartProductRemoved,
			SessionID: sessionID,
			ProductID: productID,
			At:        time.Now().UTC(),
		})
	}
	return view(l), nil
}

func (s *CartService) ClearCart(ctx context.Context, sessionID string) (CartView, error) {
	l, err := s.open(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	if err := l.Clear(ctx); err != nil {
		return CartView{}, fmt.Errorf("save cart: %w", err)
	}

	publish(ctx, s.Publisher, events.TopicCart, events.Event{
		Type:      events.CartCleared,
		SessionID: sessionID,
		At:        time.Now().UTC(),
	})
	return view(l), nil
}
