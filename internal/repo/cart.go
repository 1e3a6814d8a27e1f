package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/bookshop/internal/models"
)

func (r *GormRepo) GetCartByCustomer(ctx context.Context, customerID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart creates the customer's cart when missing and then either bumps the
// quantity of the existing line for the product or inserts a new one.
func (r *GormRepo) AddToCart(ctx context.Context, customerID, productID, quantity uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart := models.Cart{CustomerID: customerID}
		if err := tx.Where("customer_id = ?", customerID).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}
		return tx.Omit("Product").Create(&item).Error
	})
}

func (r *GormRepo) RemoveFromCart(ctx context.Context, customerID, productID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
			return err
		}

		res := tx.Unscoped().
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) ClearCart(ctx context.Context, customerID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
}
