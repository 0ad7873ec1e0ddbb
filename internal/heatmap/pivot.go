// Package heatmap counts segmented customers per location and cluster and
// writes one point layer per cluster.
package heatmap

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/ecom-prep/internal/dataset"
	"github.com/sells-group/ecom-prep/internal/tabular"
)

// Columns read from the input tables.
const (
	ColCluster = "Cluster"
	ColCity    = "City"
	ColState   = "State"
	ColCountry = "Country"
)

// Pivot holds customer counts keyed by cluster and location.
type Pivot struct {
	Clusters  []int
	Locations []string
	counts    map[int]map[string]int
}

// Count returns the customer count for a cluster at a location.
func (p *Pivot) Count(cluster int, location string) int {
	return p.counts[cluster][location]
}

// Location formats the geocoder query for a customer row.
func Location(city, state, country string) string {
	return city + ", " + state + ", " + country
}

// BuildPivot joins behaviour rows to the clusters of the same customer in
// the segmented table and counts the joined pairs per (cluster, location).
// Segmented rows without a cluster and behaviour rows with an incomplete
// address are ignored.
func BuildPivot(segmented, behavior *tabular.Table) (*Pivot, error) {
	if err := segmented.Require(dataset.ColCustomerID, ColCluster); err != nil {
		return nil, eris.Wrap(err, "heatmap: segmented")
	}
	if err := behavior.Require(dataset.ColCustomerID, ColCity, ColState, ColCountry); err != nil {
		return nil, eris.Wrap(err, "heatmap: customer behaviour")
	}

	clustersOf := make(map[string]map[int]int)
	for r := range segmented.Rows {
		raw := segmented.Get(r, ColCluster)
		if dataset.IsNull(raw) {
			continue
		}
		c, err := dataset.ParseInt(raw)
		if err != nil {
			return nil, eris.Wrapf(err, "heatmap: segmented row %d", r+2)
		}
		id := strings.TrimSpace(segmented.Get(r, dataset.ColCustomerID))
		if clustersOf[id] == nil {
			clustersOf[id] = make(map[int]int)
		}
		clustersOf[id][int(c)]++
	}

	p := &Pivot{counts: make(map[int]map[string]int)}
	locs := make(map[string]bool)
	for r := range behavior.Rows {
		clusters := clustersOf[strings.TrimSpace(behavior.Get(r, dataset.ColCustomerID))]
		if len(clusters) == 0 {
			continue
		}
		city, state, country := behavior.Get(r, ColCity), behavior.Get(r, ColState), behavior.Get(r, ColCountry)
		if dataset.IsNull(city) || dataset.IsNull(state) || dataset.IsNull(country) {
			continue
		}
		loc := Location(city, state, country)
		locs[loc] = true
		for c, n := range clusters {
			if p.counts[c] == nil {
				p.counts[c] = make(map[string]int)
			}
			p.counts[c][loc] += n
		}
	}

	for c := range p.counts {
		p.Clusters = append(p.Clusters, c)
	}
	sort.Ints(p.Clusters)
	for l := range locs {
		p.Locations = append(p.Locations, l)
	}
	sort.Strings(p.Locations)
	return p, nil
}
