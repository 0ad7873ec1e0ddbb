package synth

import (
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/internal/dataset"
	"github.com/sells-group/ecom-prep/internal/tabular"
)

// Tracking columns.
const (
	ColTrackingID = "TrackingID"
	ColUpdatedAt  = "UpdatedAt"
)

// TrackingStats summarises a tracking refresh.
type TrackingStats struct {
	Rows      int `json:"rows"`
	Refreshed int `json:"refreshed"`
	Added     int `json:"added"`
	Orphaned  int `json:"orphaned"`
}

type orderState struct {
	status string
	date   string
}

type trackingRow struct {
	orderID int64
	cells   []string
}

// RefreshTracking outer-joins tracking with the master orders on OrderID.
// Rows for orders in the master take its Status and use its OrderDate as
// UpdatedAt; rows for unknown orders are kept as they are; master orders
// with no tracking row get one. The result is ordered by OrderID and
// TrackingIDs are reassigned from 1.
func RefreshTracking(tracking, master *tabular.Table) (*tabular.Table, TrackingStats, error) {
	var stats TrackingStats
	if err := tracking.Require(dataset.ColOrderID); err != nil {
		return nil, stats, eris.Wrap(err, "synth: tracking")
	}
	if err := master.Require(dataset.ColOrderID, dataset.ColStatus, dataset.ColOrderDate); err != nil {
		return nil, stats, eris.Wrap(err, "synth: tracking master")
	}

	orders := make(map[int64]orderState)
	var orderIDs []int64
	for r := range master.Rows {
		id, err := dataset.ParseInt(master.Get(r, dataset.ColOrderID))
		if err != nil {
			return nil, stats, eris.Wrapf(err, "synth: master row %d", r+2)
		}
		if _, seen := orders[id]; seen {
			continue
		}
		orders[id] = orderState{
			status: master.Get(r, dataset.ColStatus),
			date:   master.Get(r, dataset.ColOrderDate),
		}
		orderIDs = append(orderIDs, id)
	}

	out := tabular.New(tracking.Header...)
	for _, c := range []string{ColTrackingID, dataset.ColStatus, ColUpdatedAt} {
		out.AddColumn(c)
	}
	width := len(out.Header)

	rows := make([]trackingRow, 0, tracking.Len()+len(orderIDs))
	tracked := make(map[int64]bool)
	for r, src := range tracking.Rows {
		id, err := dataset.ParseInt(tracking.Get(r, dataset.ColOrderID))
		if err != nil {
			return nil, stats, eris.Wrapf(err, "synth: tracking row %d", r+2)
		}
		cells := make([]string, width)
		copy(cells, src)
		if st, ok := orders[id]; ok {
			cells[out.Col(dataset.ColStatus)] = st.status
			cells[out.Col(ColUpdatedAt)] = st.date
			tracked[id] = true
			stats.Refreshed++
		} else {
			stats.Orphaned++
		}
		rows = append(rows, trackingRow{orderID: id, cells: cells})
	}
	for _, id := range orderIDs {
		if tracked[id] {
			continue
		}
		st := orders[id]
		cells := make([]string, width)
		cells[out.Col(dataset.ColOrderID)] = strconv.FormatInt(id, 10)
		cells[out.Col(dataset.ColStatus)] = st.status
		cells[out.Col(ColUpdatedAt)] = st.date
		rows = append(rows, trackingRow{orderID: id, cells: cells})
		stats.Added++
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].orderID < rows[j].orderID })
	idCol := out.Col(ColTrackingID)
	for i, row := range rows {
		row.cells[idCol] = strconv.Itoa(i + 1)
		out.Rows = append(out.Rows, row.cells)
	}
	stats.Rows = out.Len()

	zap.L().Info("synth: tracking refreshed",
		zap.Int("rows", stats.Rows),
		zap.Int("refreshed", stats.Refreshed),
		zap.Int("added", stats.Added),
		zap.Int("orphaned", stats.Orphaned),
	)
	return out, stats, nil
}
