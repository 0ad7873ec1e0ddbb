package nlp

import (
	"math"
	"math/rand/v2"
)

// KMeans clusters dense vectors with k-means++ seeding and Lloyd
// iterations, keeping the best of NInit runs by inertia.
type KMeans struct {
	K       int
	NInit   int
	MaxIter int
	Tol     float64
}

// Clustering is a fitted KMeans.
type Clustering struct {
	Labels  []int
	Centers [][]float64
	Inertia float64
}

const (
	defaultMaxIter = 300
	defaultTol     = 1e-4
)

// Fit clusters points. K is clamped to the number of points.
func (km KMeans) Fit(points [][]float64, rng *rand.Rand) *Clustering {
	if len(points) == 0 {
		return &Clustering{}
	}
	k := min(max(km.K, 1), len(points))
	runs := max(km.NInit, 1)
	if km.MaxIter <= 0 {
		km.MaxIter = defaultMaxIter
	}
	if km.Tol <= 0 {
		km.Tol = defaultTol
	}

	var best *Clustering
	for range runs {
		c := km.lloyd(points, seedCenters(points, k, rng))
		if best == nil || c.Inertia < best.Inertia {
			best = c
		}
	}
	return best
}

func seedCenters(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(points[rng.IntN(len(points))]))

	d2 := make([]float64, len(points))
	for i, p := range points {
		d2[i] = sqDist(p, centers[0])
	}
	for len(centers) < k {
		var total float64
		for _, d := range d2 {
			total += d
		}
		next := rng.IntN(len(points))
		if total > 0 {
			u := rng.Float64() * total
			for i, d := range d2 {
				u -= d
				if u < 0 {
					next = i
					break
				}
			}
		}
		c := clone(points[next])
		centers = append(centers, c)
		for i, p := range points {
			d2[i] = math.Min(d2[i], sqDist(p, c))
		}
	}
	return centers
}

func (km KMeans) lloyd(points [][]float64, centers [][]float64) *Clustering {
	dim := len(points[0])
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < km.MaxIter; iter++ {
		changed := false
		for i, p := range points {
			l := nearest(p, centers)
			if l != labels[i] {
				labels[i] = l
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, len(centers))
		counts := make([]int, len(centers))
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, p := range points {
			counts[labels[i]]++
			for j, x := range p {
				sums[labels[i]][j] += x
			}
		}
		var shift float64
		for c := range centers {
			if counts[c] == 0 {
				continue
			}
			for j := range sums[c] {
				sums[c][j] /= float64(counts[c])
			}
			shift += sqDist(sums[c], centers[c])
			centers[c] = sums[c]
		}
		if shift <= km.Tol*km.Tol {
			for i, p := range points {
				labels[i] = nearest(p, centers)
			}
			break
		}
	}

	var inertia float64
	for i, p := range points {
		inertia += sqDist(p, centers[labels[i]])
	}
	return &Clustering{Labels: labels, Centers: centers, Inertia: inertia}
}

func nearest(p []float64, centers [][]float64) int {
	best, bestD := 0, math.Inf(1)
	for c, center := range centers {
		if d := sqDist(p, center); d < bestD {
			best, bestD = c, d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
