package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/bookshop/internal/access"
	"github.com/Skotchmaster/bookshop/internal/events"
	"github.com/Skotchmaster/bookshop/internal/logging"
	"github.com/Skotchmaster/bookshop/internal/mapper"
	"github.com/Skotchmaster/bookshop/internal/models"
	"github.com/Skotchmaster/bookshop/internal/repo"
	"github.com/Skotchmaster/bookshop/internal/transport"
	"github.com/Skotchmaster/bookshop/internal/util"
)

const NoProductsMessage = "No products available."

// ProductIndex is the full-text search backend products are mirrored into.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p transport.ProductDTO) error
	DeleteProduct(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, from, size int) (int64, []transport.ProductDTO, error)
}

type ProductService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	// Index is optional; without it search runs against the database.
	Index ProductIndex
}

// ListProducts returns either the projected products or, when the store is
// empty, a message to show instead of a list.
func (s *ProductService) ListProducts(ctx context.Context) ([]transport.ProductDTO, string, error) {
	products, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list products: %w", err)
	}
	if len(products) == 0 {
		return nil, NoProductsMessage, nil
	}
	return mapper.Products(products), "", nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*transport.ProductDTO, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("product %d", id), err)
	}
	dto := mapper.Product(*product, product.Category)
	return &dto, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, caller access.Caller, req transport.CreateProductRequest) (*transport.ProductDTO, error) {
	l := logging.FromContext(ctx).With("svc", "products.create")

	if err := authorize(access.AdminOnly(caller)); err != nil {
		l.Warn("create_product_denied", "status", 401, "caller_id", caller.ID)
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Title:       title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}
	created, err := s.Repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	dto := mapper.Product(*created, created.Category)
	l.Info("product_created", "product_id", dto.ID)

	s.index(ctx, dto)
	publish(ctx, s.Events, events.TopicProduct, idKey(dto.ID), "product_created", map[string]any{
		"product_id":  dto.ID,
		"title":       dto.Title,
		"price":       dto.Price.String(),
		"category_id": dto.CategoryID,
	})
	return &dto, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, caller access.Caller, id uint, req transport.PatchProductRequest) (*transport.ProductDTO, error) {
	l := logging.FromContext(ctx).With("svc", "products.update", "product_id", id)

	if err := authorize(access.AdminOnly(caller)); err != nil {
		l.Warn("update_product_denied", "status", 401, "caller_id", caller.ID)
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		req.Title = &title
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	updated, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("product %d", id), err)
	}

	dto := mapper.Product(*updated, updated.Category)
	s.index(ctx, dto)
	publish(ctx, s.Events, events.TopicProduct, idKey(id), "product_updated", map[string]any{
		"product_id": id,
		"price":      dto.Price.String(),
		"stock":      dto.Stock,
	})
	return &dto, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, caller access.Caller, id uint) error {
	l := logging.FromContext(ctx).With("svc", "products.delete", "product_id", id)

	if err := authorize(access.AdminOnly(caller)); err != nil {
		l.Warn("delete_product_denied", "status", 401, "caller_id", caller.ID)
		return err
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return storeErr(fmt.Sprintf("product %d", id), err)
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			l.Warn("unindex_product_failed", "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProduct, idKey(id), "product_deleted", map[string]any{
		"product_id": id,
	})
	return nil
}

// SearchProducts queries the search index when one is configured and falls
// back to a database match when there is none or it fails.
func (s *ProductService) SearchProducts(ctx context.Context, query string, page, size int) (*transport.ProductPage, error) {
	l := logging.FromContext(ctx).With("svc", "products.search")

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	if page < 1 {
		page = 1
	}
	offset, limit := util.Calculate(page, size)

	var (
		total int64
		items []transport.ProductDTO
		err   error
	)
	if s.Index != nil {
		total, items, err = s.Index.Search(ctx, query, offset, limit)
		if err != nil {
			l.Warn("search_index_failed", "reason", "falling back to database", "error", err)
		}
	}
	if s.Index == nil || err != nil {
		var products []models.Product
		total, products, err = s.Repo.SearchProducts(ctx, query, offset, limit)
		if err != nil {
			return nil, fmt.Errorf("search products: %w", err)
		}
		items = mapper.Products(products)
	}

	totalPages := util.TotalPages(total, limit)
	return &transport.ProductPage{
		Data: items,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: totalPages,
			HasPrev:    page > 1,
			HasNext:    int64(page) < totalPages,
		},
	}, nil
}

func (s *ProductService) checkCategory(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: category_id is required", ErrValidation)
	}
	if _, err := s.Repo.GetCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %d does not exist", ErrValidation, id)
		}
		return fmt.Errorf("get category %d: %w", id, err)
	}
	return nil
}

func (s *ProductService) index(ctx context.Context, dto transport.ProductDTO) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, dto); err != nil {
		logging.FromContext(ctx).Warn("index_product_failed", "product_id", dto.ID, "error", err)
	}
}
