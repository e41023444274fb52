// Package binning drives the pair-binning stage: scanning every pixel pair
// once, writing each to a per-bin scratch file of pixel-index pairs, then
// replaying those scratch files into compressed two-point tables. Grounded
// on the source repository's create_twopt_table.cpp.
package binning

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cjcopi/npointfunc/array"
	"github.com/cjcopi/npointfunc/errs"
	"github.com/cjcopi/npointfunc/seqfile"
)

// BinSpec is the result of resolving a bin specification (cosbinfile,
// dcosbin, or dtheta) into monotonic cos(theta) bin edges.
type BinSpec struct {
	// Centers holds the bin-centre values in cos(theta); for the dtheta
	// path they are the cosines of the generated centre angles.
	Centers []float64
	// Edges holds Len(Centers)+1 monotonically increasing cos(theta)
	// values, extended slightly past +-1 at the ends.
	Edges []float64
}

// ReadCosBinFile parses a text file of bin-centre values, one per line,
// first whitespace-separated column only, '#' starting a trailing comment,
// blank lines ignored.
func ReadCosBinFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, err)
	}
	defer f.Close()

	var bins []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, errs.Wrapf(errs.ErrConfig, "binning: parsing %q: %v", path, err)
		}
		bins = append(bins, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrIO, err)
	}
	// FromCosBinFile's midpointEdges requires monotonically increasing
	// centers; the file format does not guarantee an ordered listing.
	array.ShellSort(bins)
	return bins, nil
}

// FromCosBinFile builds a BinSpec whose centers are read directly from a
// cosbinfile and whose edges are the centers' pairwise midpoints, bounded
// by +-1.1.
func FromCosBinFile(centers []float64) BinSpec {
	return BinSpec{Centers: centers, Edges: midpointEdges(centers)}
}

// FromDCosBin builds a BinSpec of uniformly spaced cos(theta) bin centres
// covering [-1, 1] with spacing dcosbin, edges from pairwise midpoints.
func FromDCosBin(dcosbin float64) BinSpec {
	nbin := int(2 / dcosbin)
	r := seqfile.NewRange(-1.0+dcosbin/2, dcosbin)
	centers := make([]float64, nbin)
	for i := range centers {
		centers[i] = r.Next()
	}
	return BinSpec{Centers: centers, Edges: midpointEdges(centers)}
}

// FromDTheta builds a BinSpec of uniformly spaced theta (degrees) bin
// centres, descending from 180 to 0 so that cos(theta) increases
// monotonically, with edges computed as the cosine of the averaged angle
// rather than the average of the cosines — the original's deliberate
// choice for "equal spacing in theta", preserved here rather than
// unified with FromDCosBin/FromCosBinFile's midpoint-of-cosines rule. The
// returned Centers are the cosines of the centre angles.
func FromDTheta(dtheta float64) BinSpec {
	nbin := int(180 / dtheta)
	r := seqfile.NewRange(180-dtheta/2, -dtheta)
	centers := make([]float64, nbin)
	for i := range centers {
		centers[i] = r.Next()
	}
	edges := make([]float64, 0, len(centers)+1)
	edges = append(edges, -1.1)
	for j := 0; j < len(centers)-1; j++ {
		edges = append(edges, math.Cos(0.5*(centers[j]+centers[j+1])*math.Pi/180))
	}
	edges = append(edges, 1.1)
	for i, c := range centers {
		centers[i] = math.Cos(c * math.Pi / 180)
	}
	return BinSpec{Centers: centers, Edges: edges}
}

func midpointEdges(centers []float64) []float64 {
	edges := make([]float64, 0, len(centers)+1)
	edges = append(edges, -1.1)
	for j := 0; j < len(centers)-1; j++ {
		edges = append(edges, 0.5*(centers[j]+centers[j+1]))
	}
	edges = append(edges, 1.1)
	return edges
}
