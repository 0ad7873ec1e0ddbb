package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/ecom-prep/internal/model"
	"github.com/sells-group/ecom-prep/internal/tabular"
)

// Column names shared by the extracts.
const (
	ColOrderItemID     = "OrderItemID"
	ColOrderID         = "OrderID"
	ColProductID       = "ProductID"
	ColCustomerID      = "CustomerID"
	ColPrice           = "Price"
	ColQuantity        = "Quantity"
	ColOrderDate       = "OrderDate"
	ColCount           = "Count"
	ColTotalAmount     = "TotalAmount"
	ColStatus          = "Status"
	ColName            = "Name"
	ColCategory        = "Category"
	ColTransactionID   = "TransactionID"
	ColPaymentMethod   = "PaymentMethod"
	ColAmount          = "Amount"
	ColTransactionDate = "TransactionDate"
	ColActionType      = "ActionType"
	ColTimestamp       = "Timestamp"
)

// IsNull reports whether a cell holds no value. Extracts written by
// dataframe tooling spell missing values as "nan" or "NaN".
func IsNull(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "null", "none", "<na>":
		return true
	}
	return false
}

// ParseInt parses an integer cell. Whole-valued floats ("3.0") are accepted
// because integer columns with gaps are exported as floats.
func ParseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, eris.Errorf("not an integer: %q", s)
	}
	return int64(f), nil
}

// ParseNullDecimal parses a money cell; null spellings yield an invalid value.
func ParseNullDecimal(s string) (decimal.NullDecimal, error) {
	if IsNull(s) {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.NullDecimal{}, eris.Errorf("not a decimal: %q", s)
	}
	return decimal.NewNullDecimal(d), nil
}

// FormatNullDecimal renders money with at least two places, or "" when
// missing. Finer values, such as prices derived from a transaction, keep
// their precision.
func FormatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	if d.Decimal.Exponent() < -2 {
		return d.Decimal.String()
	}
	return d.Decimal.StringFixed(2)
}

// TimeLayout is the format every timestamp column is written in.
const TimeLayout = "2006-01-02 15:04:05"

var timeLayouts = []string{
	TimeLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ParseTime parses a timestamp cell in any of the layouts the extracts use.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("not a timestamp: %q", s)
}

type rowDecoder struct {
	t    *tabular.Table
	name string
	row  int
	err  error
}

func (d *rowDecoder) integer(col string) int64 {
	if d.err != nil {
		return 0
	}
	n, err := ParseInt(d.t.Get(d.row, col))
	if err != nil {
		d.err = eris.Wrapf(err, "dataset: %s row %d column %s", d.name, d.row+2, col)
	}
	return n
}

func (d *rowDecoder) optInteger(col string) int64 {
	if IsNull(d.t.Get(d.row, col)) {
		return 0
	}
	return d.integer(col)
}

func (d *rowDecoder) money(col string) decimal.NullDecimal {
	if d.err != nil {
		return decimal.NullDecimal{}
	}
	v, err := ParseNullDecimal(d.t.Get(d.row, col))
	if err != nil {
		d.err = eris.Wrapf(err, "dataset: %s row %d column %s", d.name, d.row+2, col)
	}
	return v
}

func (d *rowDecoder) str(col string) string {
	v := d.t.Get(d.row, col)
	if IsNull(v) {
		return ""
	}
	return v
}

// DecodeOrders decodes Orders.csv. Count is optional.
func DecodeOrders(t *tabular.Table) ([]model.Order, error) {
	if err := t.Require(ColOrderID, ColCustomerID, ColOrderDate, ColStatus); err != nil {
		return nil, eris.Wrap(err, "dataset: orders")
	}
	out := make([]model.Order, 0, t.Len())
	for i := range t.Rows {
		d := &rowDecoder{t: t, name: Orders, row: i}
		o := model.Order{
			OrderID:     d.integer(ColOrderID),
			CustomerID:  d.integer(ColCustomerID),
			OrderDate:   d.str(ColOrderDate),
			TotalAmount: d.money(ColTotalAmount),
			Status:      d.str(ColStatus),
			Count:       d.optInteger(ColCount),
		}
		if d.err != nil {
			return nil, d.err
		}
		out = append(out, o)
	}
	return out, nil
}

// DecodeOrderItems decodes Order_Items.csv.
func DecodeOrderItems(t *tabular.Table) ([]model.OrderItem, error) {
	if err := t.Require(ColOrderItemID, ColOrderID, ColProductID, ColQuantity); err != nil {
		return nil, eris.Wrap(err, "dataset: order items")
	}
	out := make([]model.OrderItem, 0, t.Len())
	for i := range t.Rows {
		d := &rowDecoder{t: t, name: OrderItems, row: i}
		it := model.OrderItem{
			OrderItemID: d.integer(ColOrderItemID),
			OrderID:     d.integer(ColOrderID),
			ProductID:   d.integer(ColProductID),
			Price:       d.money(ColPrice),
			Quantity:    d.integer(ColQuantity),
		}
		if d.err != nil {
			return nil, d.err
		}
		out = append(out, it)
	}
	return out, nil
}

// DecodeProducts decodes Products.csv.
func DecodeProducts(t *tabular.Table) ([]model.Product, error) {
	if err := t.Require(ColProductID, ColName); err != nil {
		return nil, eris.Wrap(err, "dataset: products")
	}
	out := make([]model.Product, 0, t.Len())
	for i := range t.Rows {
		d := &rowDecoder{t: t, name: Products, row: i}
		p := model.Product{
			ProductID: d.integer(ColProductID),
			Name:      d.str(ColName),
			Category:  d.str(ColCategory),
			Price:     d.money(ColPrice),
		}
		if d.err != nil {
			return nil, d.err
		}
		out = append(out, p)
	}
	return out, nil
}

// DecodeTransactions decodes Transactions.csv. A blank amount decodes as an
// invalid Amount; the row is kept.
func DecodeTransactions(t *tabular.Table) ([]model.Transaction, error) {
	if err := t.Require(ColOrderID, ColAmount); err != nil {
		return nil, eris.Wrap(err, "dataset: transactions")
	}
	out := make([]model.Transaction, 0, t.Len())
	for i := range t.Rows {
		d := &rowDecoder{t: t, name: Transactions, row: i}
		tx := model.Transaction{
			TransactionID:   d.optInteger(ColTransactionID),
			OrderID:         d.integer(ColOrderID),
			PaymentMethod:   d.str(ColPaymentMethod),
			TransactionDate: d.str(ColTransactionDate),
			Amount:          d.money(ColAmount),
		}
		if d.err != nil {
			return nil, d.err
		}
		out = append(out, tx)
	}
	return out, nil
}

// DecodeEvents decodes Behavioral_Data.csv.
func DecodeEvents(t *tabular.Table) ([]model.BehavioralEvent, error) {
	if err := t.Require(ColCustomerID, ColProductID, ColActionType, ColTimestamp); err != nil {
		return nil, eris.Wrap(err, "dataset: behavioral data")
	}
	out := make([]model.BehavioralEvent, 0, t.Len())
	for i := range t.Rows {
		d := &rowDecoder{t: t, name: BehavioralData, row: i}
		e := model.BehavioralEvent{
			CustomerID: d.integer(ColCustomerID),
			ProductID:  d.integer(ColProductID),
			ActionType: d.str(ColActionType),
			Timestamp:  d.str(ColTimestamp),
		}
		if d.err != nil {
			return nil, d.err
		}
		out = append(out, e)
	}
	return out, nil
}

// DecodeMaster decodes Orders_Master. Extra columns such as Reviews are ignored.
func DecodeMaster(t *tabular.Table) (model.Table, error) {
	if err := t.Require(ColOrderItemID, ColOrderID, ColProductID, ColCustomerID, ColTotalAmount); err != nil {
		return nil, eris.Wrap(err, "dataset: orders master")
	}
	out := make(model.Table, 0, t.Len())
	for i := range t.Rows {
		d := &rowDecoder{t: t, name: OrdersMaster, row: i}
		r := model.MasterRow{
			OrderItemID: d.integer(ColOrderItemID),
			OrderID:     d.integer(ColOrderID),
			ProductID:   d.integer(ColProductID),
			CustomerID:  d.integer(ColCustomerID),
			Price:       d.money(ColPrice),
			Quantity:    d.optInteger(ColQuantity),
			OrderDate:   d.str(ColOrderDate),
			Count:       d.optInteger(ColCount),
			TotalAmount: d.money(ColTotalAmount),
			Status:      d.str(ColStatus),
			Name:        d.str(ColName),
			Category:    d.str(ColCategory),
		}
		if d.err != nil {
			return nil, d.err
		}
		out = append(out, r)
	}
	return out, nil
}
