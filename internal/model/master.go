package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MasterRow is one order-item of the master order record: item, order and
// product attributes denormalised onto a single row. TotalAmount is the
// order total replicated on every row of the order.
type MasterRow struct {
	OrderItemID int64
	OrderID     int64
	ProductID   int64
	CustomerID  int64
	Price       decimal.NullDecimal
	Quantity    int64
	OrderDate   string
	Count       int64
	TotalAmount decimal.NullDecimal
	Status      string
	Name        string
	Category    string
	Synthetic   bool
}

// LineTotal returns Price*Quantity, or false when the price is missing.
func (r MasterRow) LineTotal() (decimal.Decimal, bool) {
	if !r.Price.Valid {
		return decimal.Zero, false
	}
	return r.Price.Decimal.Mul(decimal.NewFromInt(r.Quantity)), true
}

// Table is the master record set. Transforms take a Table and return a new
// one. Row positions, such as those from Orders, are valid only for the
// Table they were taken from.
type Table []MasterRow

// Clone returns a copy that can be mutated without touching t.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// MaxOrderItemID returns the largest OrderItemID, or 0 for an empty table.
func (t Table) MaxOrderItemID() int64 {
	var m int64
	for _, r := range t {
		if r.OrderItemID > m {
			m = r.OrderItemID
		}
	}
	return m
}

// MaxOrderID returns the largest OrderID, or 0 for an empty table.
func (t Table) MaxOrderID() int64 {
	var m int64
	for _, r := range t {
		if r.OrderID > m {
			m = r.OrderID
		}
	}
	return m
}

// Orders groups row positions by OrderID, preserving row order within each
// group, and returns the OrderIDs in ascending order.
func (t Table) Orders() ([]int64, map[int64][]int) {
	groups := make(map[int64][]int)
	for i, r := range t {
		groups[r.OrderID] = append(groups[r.OrderID], i)
	}
	ids := make([]int64, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, groups
}

// SortByOrderItemID returns a copy of t ordered by OrderItemID.
func (t Table) SortByOrderItemID() Table {
	out := t.Clone()
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderItemID < out[j].OrderItemID })
	return out
}

// MissingRow records a join key that had no partner on the other side.
type MissingRow struct {
	Table string `json:"table"`
	Key   string `json:"key"`
	Value int64  `json:"value"`
}
