package model

// Violation identifies an order that failed a consistency check. CustomerID
// and ProductID are taken from the first row of the order.
type Violation struct {
	OrderID    int64 `json:"order_id"`
	CustomerID int64 `json:"customer_id"`
	ProductID  int64 `json:"product_id"`
}

// Report is the outcome of the consistency checks over the master set.
// Violations are diagnostic only.
type Report struct {
	Orders          int         `json:"orders"`
	Patched         []int64     `json:"patched,omitempty"`
	CountMismatches []Violation `json:"count_mismatches,omitempty"`
	TotalMismatches []Violation `json:"total_mismatches,omitempty"`
}

// Clean reports whether every order passed the total check.
func (r Report) Clean() bool {
	return len(r.TotalMismatches) == 0
}

// CountCustomerIDs lists the customers of orders failing the count check.
func (r Report) CountCustomerIDs() []int64 {
	out := make([]int64, len(r.CountMismatches))
	for i, v := range r.CountMismatches {
		out[i] = v.CustomerID
	}
	return out
}

// TotalProductIDs lists the products of orders failing the total check.
func (r Report) TotalProductIDs() []int64 {
	out := make([]int64, len(r.TotalMismatches))
	for i, v := range r.TotalMismatches {
		out[i] = v.ProductID
	}
	return out
}
