package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	ProductActive     = "active"
	ProductOutOfStock = "out-of-stock"
	ProductLowStock   = "low-stock"
)

var ProductStatuses = []string{ProductActive, ProductOutOfStock, ProductLowStock}

type Product struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name"`
	Barcode      string  `json:"barcode"`
	MRP          float64 `json:"mrp"`
	Discount     float64 `json:"discount"`
	SellingPrice float64 `json:"sellingPrice"`
	Category     string  `json:"category"`
	AutoPricing  bool    `json:"autoPricing"`
	Stock        int     `json:"stock"`
	Status       string  `json:"status,omitempty"`
}

func (p Product) Validate() error {
	var c checker
	c.require("name", p.Name)
	c.require("barcode", p.Barcode)
	c.requirePositive("mrp", p.MRP)
	c.requireChoice("category", p.Category)
	c.check("discount", p.Discount >= 0 && p.Discount <= 100)
	return c.err()
}

func NewProduct() Product {
	return Product{Status: ProductActive}
}

// SellingPrice is mrp less discount percent, rounded to cents.
func SellingPrice(mrp, discount float64) float64 {
	m := decimal.NewFromFloat(mrp)
	off := m.Mul(decimal.NewFromFloat(discount)).Div(decimal.NewFromInt(100))
	f, _ := m.Sub(off).Round(2).Float64()
	return f
}

// Reprice recomputes SellingPrice when auto pricing is on and an MRP is set.
// It reports whether the price was changed.
func (p *Product) Reprice() bool {
	if !p.AutoPricing || p.MRP <= 0 {
		return false
	}
	price := SellingPrice(p.MRP, p.Discount)
	if price == p.SellingPrice {
		return false
	}
	p.SellingPrice = price
	return true
}

func SampleProducts() []Product {
	return []Product{
		{ID: "1", Name: "Premium Coffee Beans", Barcode: "1234567890123", MRP: 299.99, Discount: 10, SellingPrice: 269.99, Category: "Beverages", AutoPricing: true, Stock: 150, Status: ProductActive},
		{ID: "2", Name: "Organic Milk", Barcode: "2345678901234", MRP: 65.0, Discount: 5, SellingPrice: 61.75, Category: "Dairy", Stock: 0, Status: ProductOutOfStock},
		{ID: "3", Name: "Whole Wheat Bread", Barcode: "3456789012345", MRP: 45.0, SellingPrice: 45.0, Category: "Bakery", AutoPricing: true, Stock: 75, Status: ProductActive},
		{ID: "4", Name: "Fresh Apples", Barcode: "4567890123456", MRP: 120.0, Discount: 15, SellingPrice: 102.0, Category: "Fruits", AutoPricing: true, Stock: 200, Status: ProductActive},
		{ID: "5", Name: "Greek Yogurt", Barcode: "5678901234567", MRP: 89.99, Discount: 8, SellingPrice: 82.79, Category: "Dairy", Stock: 30, Status: ProductLowStock},
	}
}

type Category struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

func (c Category) Validate() error {
	var ch checker
	ch.require("name", c.Name)
	return ch.err()
}

// NewCategory builds the payload the console sends for a quick-add category.
func NewCategory(name string) Category {
	name = strings.TrimSpace(name)
	return Category{Name: name, Description: "Category for " + name, IsActive: true}
}

// DefaultCategories is used when the category list cannot be fetched.
func DefaultCategories() []string {
	return []string{"Beverages", "Dairy", "Bakery", "Fruits", "Snacks"}
}
