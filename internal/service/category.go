package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/bookshop/internal/access"
	"github.com/Skotchmaster/bookshop/internal/logging"
	"github.com/Skotchmaster/bookshop/internal/mapper"
	"github.com/Skotchmaster/bookshop/internal/models"
	"github.com/Skotchmaster/bookshop/internal/repo"
	"github.com/Skotchmaster/bookshop/internal/transport"
)

type CategoryService struct {
	Repo *repo.GormRepo
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]transport.CategoryDTO, error) {
	categories, err := s.Repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return mapper.Categories(categories), nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, caller access.Caller, req transport.CreateCategoryRequest) (*transport.CategoryDTO, error) {
	l := logging.FromContext(ctx).With("svc", "categories.create")

	if err := authorize(access.AdminOnly(caller)); err != nil {
		l.Warn("create_category_denied", "status", 401, "caller_id", caller.ID)
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	category := models.Category{Name: name}
	if err := s.Repo.CreateCategoryIfNotExists(ctx, &category); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, fmt.Errorf("category %q: %w", name, ErrConflict)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	l.Info("category_created", "category_id", category.ID)
	dto := mapper.Category(category)
	return &dto, nil
}
