package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index"                    json:"-"`
}

type Customer struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;not null"  json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"not null;default:'User'" json:"role"`
}

type Category struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type Product struct {
	BaseModel
	Title       string          `gorm:"not null"               json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0"     json:"stock"`
	CategoryID  uint            `gorm:"index"                  json:"category_id"`
	Category    Category        `gorm:"foreignKey:CategoryID"  json:"-"`
}

type Cart struct {
	BaseModel
	CustomerID uint       `gorm:"uniqueIndex;not null" json:"customer_id"`
	Items      []CartItem `gorm:"foreignKey:CartID"    json:"items"`
}

type CartItem struct {
	BaseModel
	CartID    uint    `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uint    `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  uint    `gorm:"not null;check:quantity>0"             json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductID"                  json:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// All lists every table in migration order.
func All() []any {
	return []any{&Customer{}, &Category{}, &Product{}, &Cart{}, &CartItem{}}
}
