package strip

import (
	"sort"

	"github.com/detlab/spacepoint/internal/monitoring"
)

// binIndex locates the bin containing v within ascending boundaries.
// Values outside the boundaries clamp to the first or last bin.
func binIndex(bounds []float64, v float64) int {
	i := sort.SearchFloat64s(bounds, v)
	// SearchFloat64s returns the first index with bounds[i] >= v; a value
	// equal to a boundary belongs to the bin starting there.
	if i == len(bounds) || bounds[i] != v {
		i--
	}
	if i < 0 {
		return 0
	}
	if i > len(bounds)-2 {
		return len(bounds) - 2
	}
	return i
}

// binOfHit returns the hit's bin indices along both local axes.
func binOfHit(h Hit) (binX, binY int) {
	x, y := h.Local()
	s := h.Surface()
	return binIndex(s.BinBoundsX(), x), binIndex(s.BinBoundsY(), y)
}

// sortHits places each hit in a 2D occupancy grid indexed by its bin
// indices. All hits must share a surface. A later hit landing on an already
// occupied cell overwrites it; collisions are counted and reported through
// the package logger so high-occupancy data loss is diagnosable.
func sortHits(hits []Hit) ([][]Hit, error) {
	surface := hits[0].Surface()
	nx := len(surface.BinBoundsX()) - 1
	ny := len(surface.BinBoundsY()) - 1

	grid := make([][]Hit, nx)
	for i := range grid {
		grid[i] = make([]Hit, ny)
	}

	collisions := 0
	for _, h := range hits {
		if h.Surface() != surface {
			return nil, ErrMultipleSurfaces
		}
		bx, by := binOfHit(h)
		if grid[bx][by] != nil {
			collisions++
		}
		grid[bx][by] = h
	}
	if collisions > 0 {
		monitoring.Logf("strip: %d hit(s) overwrote occupied cells during clustering (last write wins)", collisions)
	}
	return grid, nil
}

// clusterLine pairs neighbouring occupied cells of one scan line. A rolling
// buffer holds the most recent primary: the cell after it (occupied or not)
// closes the cluster, and a non-empty secondary carries over as the next
// primary. A primary still pending at the end of the line was already
// stored as a secondary and is dropped; pairing never crosses lines.
func clusterLine(line []Hit, out []Cluster) []Cluster {
	var cur Hit
	for i, h := range line {
		if cur == nil {
			if h != nil {
				cur = h
				// A hit starting on the last cell has no follower to pair
				// with and closes immediately.
				if i == len(line)-1 {
					out = append(out, Cluster{Primary: h})
				}
			}
			continue
		}
		out = append(out, Cluster{Primary: cur, Secondary: h})
		cur = h
	}
	return out
}

// ClusterHits partitions one surface's hits into clusters of at most two
// bin-adjacent hits, approximating a particle crossing two neighbouring
// strips. Hits arrive in arbitrary order, so they are first sorted into an
// occupancy grid and then walked along the dimension with more bins (the
// direction across the strips).
//
// With perform == false every hit becomes its own cluster, in input order.
// Hits from more than one surface yield ErrMultipleSurfaces.
func ClusterHits(hits []Hit, perform bool) ([]Cluster, error) {
	if len(hits) == 0 {
		return nil, nil
	}
	// A single hit is always its own cluster, grid or no grid.
	if len(hits) == 1 {
		return []Cluster{{Primary: hits[0]}}, nil
	}
	if !perform {
		clusters := make([]Cluster, 0, len(hits))
		for _, h := range hits {
			clusters = append(clusters, Cluster{Primary: h})
		}
		return clusters, nil
	}

	grid, err := sortHits(hits)
	if err != nil {
		return nil, err
	}
	nx := len(grid)
	ny := len(grid[0])

	var clusters []Cluster
	line := make([]Hit, 0, max(nx, ny))
	if nx > ny {
		// More bins along x: scan each row across the strips in x.
		for iy := 0; iy < ny; iy++ {
			line = line[:0]
			for ix := 0; ix < nx; ix++ {
				line = append(line, grid[ix][iy])
			}
			clusters = clusterLine(line, clusters)
		}
	} else {
		for ix := 0; ix < nx; ix++ {
			clusters = clusterLine(grid[ix], clusters)
		}
	}
	return clusters, nil
}
