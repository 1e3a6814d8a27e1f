package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/bookshop/internal/access"
	"github.com/Skotchmaster/bookshop/internal/events"
	"github.com/Skotchmaster/bookshop/internal/logging"
	"github.com/Skotchmaster/bookshop/internal/mapper"
	"github.com/Skotchmaster/bookshop/internal/repo"
	"github.com/Skotchmaster/bookshop/internal/transport"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CartService) GetCart(ctx context.Context, caller access.Caller, customerID uint) (*transport.CartDTO, error) {
	l := logging.FromContext(ctx).With("svc", "cart.get", "customer_id", customerID)

	if err := authorize(access.AdminOrSelf(caller, customerID)); err != nil {
		l.Warn("get_cart_denied", "status", 401, "caller_id", caller.ID)
		return nil, err
	}
	return s.loadCart(ctx, customerID)
}

// AddToCart puts quantity units of a product into the caller's own cart,
// creating the cart on first use. Adding a product already in the cart
// increases the quantity of that line instead of adding a second one.
func (s *CartService) AddToCart(ctx context.Context, caller access.Caller, req transport.CartItemCreateRequest) (*transport.CartDTO, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add", "customer_id", req.CustomerID, "product_id", req.ProductID)

	if err := authorize(access.Self(caller, req.CustomerID)); err != nil {
		l.Warn("add_to_cart_denied", "status", 401, "caller_id", caller.ID)
		return nil, err
	}

	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if req.ProductID == 0 {
		return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, req.ProductID); err != nil {
		return nil, storeErr(fmt.Sprintf("product %d", req.ProductID), err)
	}

	exists, err := s.Repo.CustomerExists(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer %d: %w", req.CustomerID, err)
	}
	if !exists {
		return nil, fmt.Errorf("customer %d: %w", req.CustomerID, ErrNotFound)
	}

	if err := s.Repo.AddToCart(ctx, req.CustomerID, req.ProductID, uint(req.Quantity)); err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	cart, err := s.loadCart(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	l.Info("cart_item_added", "quantity", req.Quantity)
	publish(ctx, s.Events, events.TopicCart, idKey(req.CustomerID), "cart_item_added", map[string]any{
		"customer_id": req.CustomerID,
		"product_id":  req.ProductID,
		"quantity":    req.Quantity,
	})
	return cart, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, caller access.Caller, customerID, productID uint) (*transport.CartDTO, error) {
	l := logging.FromContext(ctx).With("svc", "cart.remove", "customer_id", customerID, "product_id", productID)

	if err := authorize(access.AdminOrSelf(caller, customerID)); err != nil {
		l.Warn("remove_from_cart_denied", "status", 401, "caller_id", caller.ID)
		return nil, err
	}

	if err := s.Repo.RemoveFromCart(ctx, customerID, productID); err != nil {
		return nil, storeErr(fmt.Sprintf("cart item %d for customer %d", productID, customerID), err)
	}

	publish(ctx, s.Events, events.TopicCart, idKey(customerID), "cart_item_removed", map[string]any{
		"customer_id": customerID,
		"product_id":  productID,
	})
	return s.loadCart(ctx, customerID)
}

func (s *CartService) ClearCart(ctx context.Context, caller access.Caller, customerID uint) (*transport.CartDTO, error) {
	l := logging.FromContext(ctx).With("svc", "cart.clear", "customer_id", customerID)

	if err := authorize(access.AdminOrSelf(caller, customerID)); err != nil {
		l.Warn("clear_cart_denied", "status", 401, "caller_id", caller.ID)
		return nil, err
	}

	if err := s.Repo.ClearCart(ctx, customerID); err != nil {
		return nil, storeErr(fmt.Sprintf("cart for customer %d", customerID), err)
	}

	publish(ctx, s.Events, events.TopicCart, idKey(customerID), "cart_cleared", map[string]any{
		"customer_id": customerID,
	})
	return s.loadCart(ctx, customerID)
}

func (s *CartService) loadCart(ctx context.Context, customerID uint) (*transport.CartDTO, error) {
	cart, err := s.Repo.GetCartByCustomer(ctx, customerID)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("cart for customer %d", customerID), err)
	}
	dto := mapper.Cart(*cart)
	return &dto, nil
}
