package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ecom-prep/internal/tabular"
)

func TestRefreshTracking(t *testing.T) {
	tracking := tabular.New("TrackingID", "OrderID", "Carrier", "Status", "UpdatedAt")
	tracking.Append([]string{"10", "3", "UPS", "Shipped", "2024-01-05"})
	tracking.Append([]string{"11", "9", "FedEx", "In Transit", "2024-02-01"})
	tracking.Append([]string{"12", "1", "USPS", "Shipped", "2024-01-02"})

	master := tabular.New("OrderItemID", "OrderID", "Status", "OrderDate")
	master.Append([]string{"1", "1", "Delivered", "2024-01-01 09:00:00"})
	master.Append([]string{"2", "1", "Delivered", "2024-01-01 09:00:00"})
	master.Append([]string{"3", "2", "Shipped", "2024-01-03 10:00:00"})
	master.Append([]string{"4", "3", "In Transit", "2024-01-04 11:00:00"})

	out, stats, err := RefreshTracking(tracking, master)
	require.NoError(t, err)

	assert.Equal(t, tracking.Header, out.Header)
	assert.Equal(t, [][]string{
		{"1", "1", "USPS", "Delivered", "2024-01-01 09:00:00"},
		{"2", "2", "", "Shipped", "2024-01-03 10:00:00"},
		{"3", "3", "UPS", "In Transit", "2024-01-04 11:00:00"},
		{"4", "9", "FedEx", "In Transit", "2024-02-01"},
	}, out.Rows)
	assert.Equal(t, TrackingStats{Rows: 4, Refreshed: 2, Added: 1, Orphaned: 1}, stats)
}

func TestRefreshTracking_AddsMissingColumns(t *testing.T) {
	tracking := tabular.New("OrderID")
	master := tabular.New("OrderID", "Status", "OrderDate")
	master.Append([]string{"5", "Shipped", "2024-03-01 00:00:00"})

	out, _, err := RefreshTracking(tracking, master)
	require.NoError(t, err)
	assert.Equal(t, []string{"OrderID", "TrackingID", "Status", "UpdatedAt"}, out.Header)
	assert.Equal(t, []string{"5", "1", "Shipped", "2024-03-01 00:00:00"}, out.Rows[0])
}

func TestRefreshTracking_Errors(t *testing.T) {
	master := tabular.New("OrderID", "Status", "OrderDate")

	_, _, err := RefreshTracking(tabular.New("TrackingID"), master)
	require.Error(t, err)

	_, _, err = RefreshTracking(tabular.New("OrderID"), tabular.New("OrderID"))
	require.Error(t, err)

	bad := tabular.New("OrderID")
	bad.Append([]string{"abc"})
	_, _, err = RefreshTracking(bad, master)
	require.Error(t, err)
}
