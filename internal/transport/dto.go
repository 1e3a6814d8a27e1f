package transport

import "github.com/shopspring/decimal"

type ProductDTO struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Author       string          `json:"author"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
}

type CreateProductRequest struct {
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  uint            `json:"category_id"`
}

type PatchProductRequest struct {
	Title       *string          `json:"title"`
	Author      *string          `json:"author"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	CategoryID  *uint            `json:"category_id"`
}

type ProductPage struct {
	Data []ProductDTO `json:"data"`
	Meta PageMeta     `json:"meta"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CartItemDTO struct {
	ProductID    uint   `json:"product_id"`
	ProductTitle string `json:"product_title"`
	Quantity     uint   `json:"quantity"`
}

type CartDTO struct {
	CustomerID uint          `json:"customer_id"`
	Items      []CartItemDTO `json:"items"`
}

type CartItemCreateRequest struct {
	CustomerID uint `json:"customer_id"`
	ProductID  uint `json:"product_id"`
	Quantity   int  `json:"quantity"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	CustomerID  uint   `json:"customer_id"`
	IsAdmin     bool   `json:"is_admin"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
