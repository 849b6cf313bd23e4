package strip

import "gonum.org/v1/gonum/spatial/r3"

// StripEnds returns the world coordinates of the two physical ends of the
// strip a hit landed on. The strip's long direction is the local axis whose
// bin is wider: strips are long in one local direction and narrow in the
// other, so the segmentation encodes the orientation.
func StripEnds(h Hit) (top, bottom r3.Vec) {
	s := h.Surface()
	boundsX := s.BinBoundsX()
	boundsY := s.BinBoundsY()
	binX, binY := binOfHit(h)

	if boundsX[binX+1]-boundsX[binX] < boundsY[binY+1]-boundsY[binY] {
		// Strip runs along local y; the hit constrains x to the bin centre.
		midX := (boundsX[binX] + boundsX[binX+1]) / 2
		top = s.LocalToWorld(midX, boundsY[binY+1])
		bottom = s.LocalToWorld(midX, boundsY[binY])
		return top, bottom
	}
	// Strip runs along local x.
	midY := (boundsY[binY] + boundsY[binY+1]) / 2
	top = s.LocalToWorld(boundsX[binX], midY)
	bottom = s.LocalToWorld(boundsX[binX+1], midY)
	return top, bottom
}

// ClusterEnds returns the representative strip endpoints of a cluster. For
// a two-hit cluster the endpoint pairs of both strips are averaged
// element-wise; the two strips are parallel neighbours, so the average
// approximates the true crossing position.
func ClusterEnds(c Cluster) (top, bottom r3.Vec) {
	top, bottom = StripEnds(c.Primary)
	if c.Secondary != nil {
		top2, bottom2 := StripEnds(c.Secondary)
		top = r3.Scale(0.5, r3.Add(top, top2))
		bottom = r3.Scale(0.5, r3.Add(bottom, bottom2))
	}
	return top, bottom
}
