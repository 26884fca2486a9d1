package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Size        string          `json:"size,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	ActualPrice decimal.Decimal `json:"actual_price"`
	Price       decimal.Decimal `json:"price"`
}

// Cart is keyed by an opaque session token. UserID is set once the cart is claimed by an account.
type Cart struct {
	ID        uuid.UUID       `json:"id"`
	Token     string          `json:"cart_token"`
	UserID    *uuid.UUID      `json:"user_id,omitempty"`
	Items     []CartItem      `json:"items"`
	Bill      decimal.Decimal `json:"bill"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewCart(token string) *Cart {
	if token == "" {
		token = uuid.NewString()
	}

	return &Cart{
		ID:    uuid.New(),
		Token: token,
		Items: []CartItem{},
		Bill:  decimal.Zero,
	}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem locates a line by (productID, size). An empty size matches the first line of the product.
func (c *Cart) FindItem(productID uuid.UUID, size string) int {
	for i, item := range c.Items {
		if item.ProductID != productID {
			continue
		}

		if size == "" || strings.EqualFold(item.Size, size) {
			return i
		}
	}

	return -1
}

func (c *Cart) findExact(productID uuid.UUID, size string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && strings.EqualFold(item.Size, size) {
			return i
		}
	}

	return -1
}

// Add merges quantity into the (productID, size) line or appends a new one.
func (c *Cart) Add(productID uuid.UUID, size, name string, unit decimal.Decimal, quantity int) CartItem {
	subtotal := unit.Mul(decimal.NewFromInt(int64(quantity)))
	c.Bill = c.Bill.Add(subtotal)

	if i := c.findExact(productID, size); i >= 0 {
		item := &c.Items[i]
		item.Quantity += quantity
		item.Price = item.Price.Add(subtotal)
		item.ActualPrice = unit

		return *item
	}

	item := CartItem{
		ProductID:   productID,
		Size:        size,
		ProductName: name,
		Quantity:    quantity,
		ActualPrice: unit,
		Price:       subtotal,
	}
	c.Items = append(c.Items, item)

	return item
}

// Remove splices out the line at i and lowers the bill by its subtotal, never below zero.
func (c *Cart) Remove(i int) CartItem {
	item := c.Items[i]
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.Bill = clampZero(c.Bill.Sub(item.Price))

	return item
}

// SetQuantity reprices the line at i with the current unit price.
func (c *Cart) SetQuantity(i, quantity int, unit decimal.Decimal) CartItem {
	item := &c.Items[i]
	oldPrice := item.Price

	item.Quantity = quantity
	item.ActualPrice = unit
	item.Price = unit.Mul(decimal.NewFromInt(int64(quantity)))

	c.Bill = clampZero(c.Bill.Sub(oldPrice).Add(item.Price))

	return *item
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.Bill = decimal.Zero
}

// OwnedByOther reports whether the cart was claimed by an account other than userID.
func (c *Cart) OwnedByOther(userID uuid.UUID) bool {
	return c.UserID != nil && *c.UserID != userID
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}

type CartRequest struct {
	Token string `json:"cart_token"`
}

type AddItemRequest struct {
	Token     string    `json:"cart_token"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Size      string    `json:"size,omitempty" validate:"max=20"`
}

type RemoveItemRequest struct {
	Token     string    `json:"cart_token"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Size      string    `json:"size,omitempty" validate:"max=20"`
}

// A quantity of zero or less removes the line.
type UpdateItemRequest struct {
	Token     string    `json:"cart_token"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Size      string    `json:"size,omitempty" validate:"max=20"`
	Quantity  int       `json:"quantity"`
}
