// Package strip reconstructs three-dimensional space points from pairs of
// one-dimensional strip-sensor hits.
//
// A strip sensor measures position along only one local axis. Two closely
// spaced surfaces carry strips at a small stereo angle to each other, so a
// hit on the front surface combined with the matching hit on the back
// surface pins down both coordinates and yields a 3D measurement usable by
// downstream trajectory fitting.
//
// The pipeline runs strictly downstream:
//
//	raw hits → clusters → matched front/back pairs → strip endpoints
//	         → solved parameters → 3D position (or rejection)
//
// AddHits performs the combinatorial half (clustering and angular matching);
// CalculateSpacePoints performs the numerical half (skew-line intersection
// with tolerance-based recovery). Everything here is a pure function of its
// inputs and the Config: no I/O, no shared state between candidates.
package strip
