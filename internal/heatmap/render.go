package heatmap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Attribute names carried by every point.
const (
	AttrCount    = "COUNT"
	AttrCluster  = "CLUSTER"
	AttrLocation = "LOCATION"
)

const locationFieldLen = 254

type point struct {
	location string
	coord    Coord
	count    int
}

// points lists every geocoded location for a cluster, including those
// where the cluster has no customers.
func (p *Pivot) points(cluster int, coords map[string]Coord) []point {
	var out []point
	for _, loc := range p.Locations {
		c, ok := coords[loc]
		if !ok {
			continue
		}
		out = append(out, point{location: loc, coord: c, count: p.Count(cluster, loc)})
	}
	return out
}

// LayerName is the base file name of a cluster's layers.
func LayerName(cluster int) string {
	return fmt.Sprintf("heatmap_cluster_%d", cluster)
}

// FeatureCollection renders a cluster's points as GeoJSON features.
func FeatureCollection(cluster int, pts []point) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(pts))}
	for _, pt := range pts {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{pt.coord.Lon, pt.coord.Lat}),
			Properties: map[string]interface{}{
				AttrCount:    pt.count,
				AttrCluster:  cluster,
				AttrLocation: pt.location,
			},
		})
	}
	return fc
}

func writeGeoJSON(path string, fc *geojson.FeatureCollection) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "heatmap: encode geojson")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "heatmap: write %s", path)
	}
	return nil
}

func writeShapefile(path string, cluster int, pts []point) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "heatmap: create %s", path)
	}
	defer w.Close()

	if err := w.SetFields([]shp.Field{
		shp.NumberField(AttrCount, 10),
		shp.NumberField(AttrCluster, 4),
		shp.StringField(AttrLocation, locationFieldLen),
	}); err != nil {
		return eris.Wrap(err, "heatmap: shapefile fields")
	}
	for _, pt := range pts {
		row := int(w.Write(&shp.Point{X: pt.coord.Lon, Y: pt.coord.Lat}))
		loc := pt.location
		if len(loc) > locationFieldLen {
			loc = loc[:locationFieldLen]
		}
		for field, value := range []interface{}{pt.count, cluster, loc} {
			if err := w.WriteAttribute(row, field, value); err != nil {
				return eris.Wrapf(err, "heatmap: shapefile attribute %d", field)
			}
		}
	}
	return nil
}

// Render writes a GeoJSON file and a point shapefile per cluster into dir
// and returns the paths written.
func Render(dir string, p *Pivot, coords map[string]Coord) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "heatmap: create %s", dir)
	}
	var paths []string
	for _, c := range p.Clusters {
		pts := p.points(c, coords)
		base := filepath.Join(dir, LayerName(c))

		gj := base + ".geojson"
		if err := writeGeoJSON(gj, FeatureCollection(c, pts)); err != nil {
			return paths, err
		}
		paths = append(paths, gj)

		sp := base + ".shp"
		if err := writeShapefile(sp, c, pts); err != nil {
			return paths, err
		}
		paths = append(paths, sp)
	}
	return paths, nil
}
