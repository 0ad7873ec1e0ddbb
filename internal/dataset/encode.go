package dataset

import (
	"strconv"

	"github.com/sells-group/ecom-prep/internal/model"
	"github.com/sells-group/ecom-prep/internal/tabular"
)

// MasterColumns is the column order of Orders_Master.
var MasterColumns = []string{
	ColOrderItemID,
	ColOrderID,
	ColProductID,
	ColPrice,
	ColQuantity,
	ColCustomerID,
	ColOrderDate,
	ColCount,
	ColTotalAmount,
	ColStatus,
	ColName,
	ColCategory,
}

// TransactionColumns is the column order of Transactions.
var TransactionColumns = []string{
	ColTransactionID,
	ColOrderID,
	ColPaymentMethod,
	ColAmount,
	ColTransactionDate,
}

// EncodeMaster renders the master record set.
func EncodeMaster(rows model.Table) *tabular.Table {
	t := tabular.New(MasterColumns...)
	for _, r := range rows {
		t.Append([]string{
			itoa(r.OrderItemID),
			itoa(r.OrderID),
			itoa(r.ProductID),
			FormatNullDecimal(r.Price),
			itoa(r.Quantity),
			itoa(r.CustomerID),
			r.OrderDate,
			itoa(r.Count),
			FormatNullDecimal(r.TotalAmount),
			r.Status,
			r.Name,
			r.Category,
		})
	}
	return t
}

// AppendTransactions adds txns to t as read from disk. Existing rows and any
// extra columns are left untouched; missing transaction columns are added.
func AppendTransactions(t *tabular.Table, txns []model.Transaction) *tabular.Table {
	for _, col := range TransactionColumns {
		t.AddColumn(col)
	}
	for _, tx := range txns {
		id := ""
		if tx.TransactionID > 0 {
			id = itoa(tx.TransactionID)
		}
		t.AppendMap(map[string]string{
			ColTransactionID:   id,
			ColOrderID:         itoa(tx.OrderID),
			ColPaymentMethod:   tx.PaymentMethod,
			ColAmount:          FormatNullDecimal(tx.Amount),
			ColTransactionDate: tx.TransactionDate,
		})
	}
	return t
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
