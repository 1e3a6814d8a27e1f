// Package mapper projects stored entities into their transport form.
package mapper

import (
	"github.com/Skotchmaster/bookshop/internal/models"
	"github.com/Skotchmaster/bookshop/internal/transport"
)

func Product(p models.Product, c models.Category) transport.ProductDTO {
	return transport.ProductDTO{
		ID:           p.ID,
		Title:        p.Title,
		Author:       p.Author,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		CategoryID:   p.CategoryID,
		CategoryName: c.Name,
	}
}

// Products expects Category to be preloaded on every product.
func Products(items []models.Product) []transport.ProductDTO {
	out := make([]transport.ProductDTO, 0, len(items))
	for _, p := range items {
		out = append(out, Product(p, p.Category))
	}
	return out
}

func Category(c models.Category) transport.CategoryDTO {
	return transport.CategoryDTO{ID: c.ID, Name: c.Name}
}

func Categories(items []models.Category) []transport.CategoryDTO {
	out := make([]transport.CategoryDTO, 0, len(items))
	for _, c := range items {
		out = append(out, Category(c))
	}
	return out
}

func CartItem(it models.CartItem, p models.Product) transport.CartItemDTO {
	return transport.CartItemDTO{
		ProductID:    it.ProductID,
		ProductTitle: p.Title,
		Quantity:     it.Quantity,
	}
}

// Cart expects Items and Items.Product to be preloaded.
func Cart(c models.Cart) transport.CartDTO {
	items := make([]transport.CartItemDTO, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, CartItem(it, it.Product))
	}
	return transport.CartDTO{CustomerID: c.CustomerID, Items: items}
}
