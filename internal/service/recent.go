package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/stylehub/internal/catalog"
	"github.com/Skotchmaster/stylehub/internal/models"
	"github.com/Skotchmaster/stylehub/internal/recent"
	"github.com/Skotchmaster/stylehub/internal/store"
)

type RecentService struct {
	Store    store.Store
	Products catalog.Provider
}

func (s *RecentService) open(ctx context.Context, sessionID string) (*recent.List, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id must not be empty: %w", ErrValidation)
	}
	return recent.Load(ctx, store.Scoped(s.Store, sessionID))
}

func (s *RecentService) Record(ctx context.Context, sessionID string, productID int) error {
	l, err := s.open(ctx, sessionID)
	if err != nil {
		return err
	}
	return l.Add(ctx, productID)
}

// Products resolves the history against the catalog, most recent first.
func (s *RecentService) Products(ctx context.Context, sessionID string) ([]models.Product, error) {
	l, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return l.Products(ctx, s.Products)
}

func (s *RecentService) Clear(ctx context.Context, sessionID string) error {
	l, err := s.open(ctx, sessionID)
	if err != nil {
		return err
	}
	return l.Clear(ctx)
}
