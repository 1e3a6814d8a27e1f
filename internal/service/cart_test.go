package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bookshop/internal/access"
	"github.com/Skotchmaster/bookshop/internal/db/dbtest"
	"github.com/Skotchmaster/bookshop/internal/events"
	"github.com/Skotchmaster/bookshop/internal/models"
	"github.com/Skotchmaster/bookshop/internal/repo"
	"github.com/Skotchmaster/bookshop/internal/transport"
)

type cartFixture struct {
	svc  *CartService
	pub  *recordingPublisher
	book models.Product
}

func newCartFixture(t *testing.T) cartFixture {
	t.Helper()

	gdb := dbtest.New(t)
	pub := &recordingPublisher{}
	dbtest.Customer(t, gdb, 1, "Test User", "User")
	dbtest.Customer(t, gdb, 2, "Other User", "User")
	cat := dbtest.Category(t, gdb, "Fiction")
	book := dbtest.Product(t, gdb, "Test Book", "50", cat.ID)

	return cartFixture{
		svc:  &CartService{Repo: repo.New(gdb), Events: pub},
		pub:  pub,
		book: book,
	}
}

func TestAddToCart_EmptyCart(t *testing.T) {
	f := newCartFixture(t)
	dbtest.Cart(t, f.svc.Repo.DB, 1)

	cart, err := f.svc.AddToCart(ctx, user(1), transport.CartItemCreateRequest{CustomerID: 1, ProductID: f.book.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, uint(1), cart.CustomerID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, transport.CartItemDTO{ProductID: f.book.ID, ProductTitle: "Test Book", Quantity: 2}, cart.Items[0])

	require.Len(t, f.pub.events, 1)
	assert.Equal(t, events.TopicCart, f.pub.events[0].Topic)
	assert.Equal(t, "1", f.pub.events[0].Key)
	assert.Equal(t, "cart_item_added", f.pub.events[0].Event["type"])
}

func TestAddToCart_SameProductIncrements(t *testing.T) {
	f := newCartFixture(t)
	req := transport.CartItemCreateRequest{CustomerID: 1, ProductID: f.book.ID, Quantity: 2}

	_, err := f.svc.AddToCart(ctx, user(1), req)
	require.NoError(t, err)
	req.Quantity = 3
	cart, err := f.svc.AddToCart(ctx, user(1), req)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(5), cart.Items[0].Quantity)
}

func TestAddToCart_Rejects(t *testing.T) {
	f := newCartFixture(t)

	tests := []struct {
		name   string
		caller access.Caller
		req    transport.CartItemCreateRequest
		want   error
	}{
		{name: "other customer", caller: user(2), req: transport.CartItemCreateRequest{CustomerID: 1, ProductID: f.book.ID, Quantity: 1}, want: ErrUnauthorized},
		{name: "admin for someone else", caller: admin, req: transport.CartItemCreateRequest{CustomerID: 1, ProductID: f.book.ID, Quantity: 1}, want: ErrUnauthorized},
		{name: "zero quantity", caller: user(1), req: transport.CartItemCreateRequest{CustomerID: 1, ProductID: f.book.ID, Quantity: 0}, want: ErrValidation},
		{name: "negative quantity", caller: user(1), req: transport.CartItemCreateRequest{CustomerID: 1, ProductID: f.book.ID, Quantity: -2}, want: ErrValidation},
		{name: "no product", caller: user(1), req: transport.CartItemCreateRequest{CustomerID: 1, Quantity: 1}, want: ErrValidation},
		{name: "unknown product", caller: user(1), req: transport.CartItemCreateRequest{CustomerID: 1, ProductID: 999, Quantity: 1}, want: ErrNotFound},
		{name: "unknown customer", caller: user(42), req: transport.CartItemCreateRequest{CustomerID: 42, ProductID: f.book.ID, Quantity: 1}, want: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddToCart(ctx, tt.caller, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.pub.types())
}

func TestGetCart(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.svc.GetCart(ctx, user(1), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.AddToCart(ctx, user(1), transport.CartItemCreateRequest{CustomerID: 1, ProductID: f.book.ID, Quantity: 1})
	require.NoError(t, err)

	for _, caller := range []access.Caller{user(1), admin} {
		cart, err := f.svc.GetCart(ctx, caller, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), cart.CustomerID)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "Test Book", cart.Items[0].ProductTitle)
	}

	_, err = f.svc.GetCart(ctx, user(2), 1)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRemoveAndClearCart(t *testing.T) {
	f := newCartFixture(t)
	other := dbtest.Product(t, f.svc.Repo.DB, "Other Book", "5", f.book.CategoryID)

	_, err := f.svc.ClearCart(ctx, user(1), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	for _, id := range []uint{f.book.ID, other.ID} {
		_, err := f.svc.AddToCart(ctx, user(1), transport.CartItemCreateRequest{CustomerID: 1, ProductID: id, Quantity: 1})
		require.NoError(t, err)
	}

	_, err = f.svc.RemoveFromCart(ctx, user(2), 1, f.book.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	cart, err := f.svc.RemoveFromCart(ctx, user(1), 1, f.book.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, other.ID, cart.Items[0].ProductID)

	_, err = f.svc.RemoveFromCart(ctx, user(1), 1, f.book.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	cart, err = f.svc.ClearCart(ctx, admin, 1)
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)

	assert.Equal(t, []string{"cart_item_added", "cart_item_added", "cart_item_removed", "cart_cleared"}, f.pub.types())
}

func TestAddToCart_CreatesMissingCart(t *testing.T) {
	f := newCartFixture(t)

	cart, err := f.svc.AddToCart(ctx, user(2), transport.CartItemCreateRequest{CustomerID: 2, ProductID: f.book.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, uint(2), cart.CustomerID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Test Book", cart.Items[0].ProductTitle)
}

func TestGetCart_AfterProductDeleted(t *testing.T) {
	f := newCartFixture(t)
	products := &ProductService{Repo: f.svc.Repo}

	_, err := f.svc.AddToCart(ctx, user(1), transport.CartItemCreateRequest{CustomerID: 1, ProductID: f.book.ID, Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, products.DeleteProduct(ctx, admin, f.book.ID))

	cart, err := f.svc.GetCart(ctx, user(1), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), cart.CustomerID)
	assert.Empty(t, cart.Items)

	_, err = f.svc.AddToCart(ctx, user(1), transport.CartItemCreateRequest{CustomerID: 1, ProductID: f.book.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}
