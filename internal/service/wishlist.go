package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/stylehub/internal/catalog"
	"github.com/Skotchmaster/stylehub/internal/events"
	"github.com/Skotchmaster/stylehub/internal/models"
	"github.com/Skotchmaster/stylehub/internal/store"
	"github.com/Skotchmaster/stylehub/internal/wishlist"
)

type WishlistService struct {
	Store     store.Store
	Products  catalog.Provider
	Publisher events.Publisher
}

type WishlistView struct {
	Items []models.Product `json:"items"`
	Count int              `json:"count"`
}

func (s *WishlistService) open(ctx context.Context, sessionID string) (*wishlist.Set, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id must not be empty: %w", ErrValidation)
	}
	return wishlist.Load(ctx, store.Scoped(s.Store, sessionID))
}

func (s *WishlistService) product(ctx context.Context, id int) (models.Product, error) {
	if id <= 0 {
		return models.Product{}, fmt.Errorf("product id must be positive: %w", ErrValidation)
	}
	p, err := s.Products.GetByID(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return models.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *WishlistService) GetWishlist(ctx context.Context, sessionID string) (WishlistView, error) {
	w, err := s.open(ctx, sessionID)
	if err != nil {
		return WishlistView{}, err
	}
	return WishlistView{Items: w.Items(), Count: w.Count()}, nil
}

func (s *WishlistService) Contains(ctx context.Context, sessionID string, productID int) (bool, error) {
	w, err := s.open(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return w.Contains(productID), nil
}

func (s *WishlistService) Add(ctx context.Context, sessionID string, productID int) (WishlistView, error) {
	p, err := s.product(ctx, productID)
	if err != nil {
		return WishlistView{}, err
	}
	w, err := s.open(ctx, sessionID)
	if err != nil {
		return WishlistView{}, err
	}
	if w.Contains(p.ID) {
		return WishlistView{Items: w.Items(), Count: w.Count()}, nil
	}
	if err := w.Add(ctx, p); err != nil {
		return WishlistView{}, fmt.Errorf("save wishlist: %w", err)
	}
	s.emit(ctx, events.WishlistAdded, sessionID, p.ID)
	return WishlistView{Items: w.Items(), Count: w.Count()}, nil
}

func (s *WishlistService) Remove(ctx context.Context, sessionID string, productID int) (WishlistView, error) {
	w, err := s.open(ctx, sessionID)
	if err != nil {
		return WishlistView{}, err
	}
	if !w.Contains(productID) {
		return WishlistView{Items: w.Items(), Count: w.Count()}, nil
	}
	if err := w.Remove(ctx, productID); err != nil {
		return WishlistView{}, fmt.Errorf("save wishlist: %w", err)
	}
	s.emit(ctx, events.WishlistRemoved, sessionID, productID)
	return WishlistView{Items: w.Items(), Count: w.Count()}, nil
}

// Toggle reports whether the product is wishlisted afterwards. Removing does
// not need the product to still be in the catalog.
func (s *WishlistService) Toggle(ctx context.Context, sessionID string, productID int) (bool, WishlistView, error) {
	w, err := s.open(ctx, sessionID)
	if err != nil {
		return false, WishlistView{}, err
	}

	p := models.Product{ID: productID}
	if !w.Contains(productID) {
		if p, err = s.product(ctx, productID); err != nil {
			return false, WishlistView{}, err
		}
	}

	added, err := w.Toggle(ctx, p)
	if err != nil {
		return false, WishlistView{}, fmt.Errorf("save wishlist: %w", err)
	}
	if added {
		s.emit(ctx, events.WishlistAdded, sessionID, productID)
	} else {
		s.emit(ctx, events.WishlistRemoved, sessionID, productID)
	}
	return added, WishlistView{Items: w.Items(), Count: w.Count()}, nil
}

func (s *WishlistService) emit(ctx context.Context, typ, sessionID string, productID int) {
	publish(ctx, s.Publisher, events.TopicWishlist, events.Event{
		Type:      typ,
		SessionID: sessionID,
		ProductID: productID,
		At:        time.Now().UTC(),
	})
}
