package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"techo/backend/internal/domain"
	"techo/backend/internal/xid"
)

func (s *Service) ListCategories(_ context.Context) ([]domain.Category, error) {
	return s.state.Categories(), nil
}

func (s *Service) ListItems(_ context.Context) ([]domain.Item, error) {
	return s.state.Items(), nil
}

func (s *Service) AddCategory(ctx context.Context, req domain.CategoryCreateRequest) (domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Category{}, fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}

	cat := domain.Category{ID: xid.New("cat"), Name: name}
	s.state.AddCategory(cat)

	if err := s.persist(ctx); err != nil {
		return domain.Category{}, err
	}
	return cat, nil
}

func (s *Service) AddItem(ctx context.Context, req domain.ItemCreateRequest) (domain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Item{}, fmt.Errorf("%w: item name is required", domain.ErrValidation)
	}
	if req.PriceCents < 0 {
		return domain.Item{}, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if req.Quantity < 0 {
		return domain.Item{}, fmt.Errorf("%w: quantity must not be negative", domain.ErrValidation)
	}

	item := domain.Item{
		ID:         xid.New("item"),
		Name:       name,
		PriceCents: req.PriceCents,
		Quantity:   req.Quantity,
		CategoryID: strings.TrimSpace(req.CategoryID),
	}
	if err := s.state.CreateItem(item); err != nil {
		return domain.Item{}, err
	}

	if err := s.persist(ctx); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

// EditItem applies the complete field set atomically. Non-negativity is
// enforced on edit exactly as on create.
func (s *Service) EditItem(ctx context.Context, itemID string, req domain.ItemUpdateRequest) (domain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Item{}, fmt.Errorf("%w: item name is required", domain.ErrValidation)
	}
	if req.PriceCents < 0 {
		return domain.Item{}, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if req.Quantity < 0 {
		return domain.Item{}, fmt.Errorf("%w: quantity must not be negative", domain.ErrValidation)
	}

	item, err := s.state.EditItem(itemID, name, req.PriceCents, req.Quantity)
	if err != nil {
		return domain.Item{}, err
	}

	if err := s.persist(ctx); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

// DeleteCategory removes the category and every item inside it. The caller is
// trusted to have confirmed the cascade with the user beforehand; once called,
// the deletion is unconditional. Deleting an unknown id is a no-op.
func (s *Service) DeleteCategory(ctx context.Context, categoryID string) error {
	removed, existed := s.state.DeleteCategory(categoryID)
	if !existed {
		return nil
	}

	log.Printf("[service] category deleted id=%s cascaded_items=%d", categoryID, removed)
	return s.persist(ctx)
}

// DeleteItem removes the item if present; no-op otherwise. Lines already
// snapshotted into past bills keep their values.
func (s *Service) DeleteItem(ctx context.Context, itemID string) error {
	if !s.state.DeleteItem(itemID) {
		return nil
	}
	return s.persist(ctx)
}
