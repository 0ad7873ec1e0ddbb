// Package model defines the typed rows that flow through the preparation pipeline.
package model

import (
	"github.com/shopspring/decimal"
)

// Normalised order statuses, shared with the tracking extract.
const (
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusInTransit = "In Transit"
)

// Statuses lists the normalised statuses in a stable order.
var Statuses = []string{StatusShipped, StatusDelivered, StatusInTransit}

// OrderItem is one line of Order_Items.csv.
type OrderItem struct {
	OrderItemID int64
	OrderID     int64
	ProductID   int64
	Price       decimal.NullDecimal
	Quantity    int64
}

// Order is one line of Orders.csv. Count is the declared number of items;
// zero means the extract did not carry the column.
type Order struct {
	OrderID     int64
	CustomerID  int64
	OrderDate   string
	TotalAmount decimal.NullDecimal
	Status      string
	Count       int64
}

// Product is one catalog entry from Products.csv.
type Product struct {
	ProductID int64
	Name      string
	Category  string
	Price     decimal.NullDecimal
}

// Transaction is the paid total recorded for an order. Amount is invalid when
// the source left it blank.
type Transaction struct {
	TransactionID   int64
	OrderID         int64
	PaymentMethod   string
	Amount          decimal.NullDecimal
	TransactionDate string
}

// ActionPurchase marks a behavioural event that represents a completed purchase.
const ActionPurchase = "purchase"

// BehavioralEvent is one line of Behavioral_Data.csv.
type BehavioralEvent struct {
	CustomerID int64
	ProductID  int64
	ActionType string
	Timestamp  string
}

// IsPurchase reports whether the event is a purchase.
func (e BehavioralEvent) IsPurchase() bool {
	return e.ActionType == ActionPurchase
}

// Inputs are the raw extracts the order reconciliation reads.
type Inputs struct {
	Orders       []Order
	Items        []OrderItem
	Products     []Product
	Transactions []Transaction
	Events       []BehavioralEvent
}
