package kiosk

import (
	"math/rand/v2"

	"pos-kiosk-demo/internal/parse"
)

// CartItem is one line of the order.
type CartItem struct {
	ID       int
	Name     string
	Price    float64
	Quantity int
}

// CatalogItem is something the kiosk can put in the cart on its own.
type CatalogItem struct {
	Name  string
	Price float64
}

// Catalog feeds AddRandomItem and the empty-cart fill.
var Catalog = []CatalogItem{
	{Name: "Cold Brew", Price: 4.75},
	{Name: "Oat Latte", Price: 5.50},
	{Name: "Matcha", Price: 5.25},
	{Name: "Croissant", Price: 3.95},
	{Name: "Banana Bread", Price: 3.50},
	{Name: "Breakfast Burrito", Price: 8.95},
	{Name: "Avocado Toast", Price: 9.25},
	{Name: "Sparkling Water", Price: 2.25},
}

// Subtotal sums price*quantity over the cart, formatted to two decimals.
func Subtotal(items []CartItem) string {
	var cents int64
	for _, it := range items {
		cents += parse.Cents(it.Price) * int64(it.Quantity)
	}
	return parse.FormatCents(cents)
}

// ItemCount returns the number of units in the cart.
func ItemCount(items []CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func randomPick(n int) int {
	return rand.IntN(n)
}
