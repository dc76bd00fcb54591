package weather

import (
	"fmt"
	"math"

	"github.com/nilsmagnus/grib/griblib"
)

// grid is a regular latitude/longitude field in scan order: rows follow the
// latitude scan away from the first point, columns run eastward from it.
// Global grids carry one extra wrapped column so interpolation can cross the
// antimeridian.
type grid struct {
	lat0 float64
	lon0 float64
	dLat float64
	dLon float64
	nLat int
	nLon int
	rows [][]float64
}

// newGrid decodes a Grid0 definition and its data points. Grid0 stores
// coordinates and increments in micro-degrees.
func newGrid(def *griblib.Grid0, data []float64) (*grid, error) {
	g := &grid{
		lat0: float64(def.La1) / 1e6,
		lon0: float64(def.Lo1) / 1e6,
		dLat: float64(def.Dj) / 1e6,
		dLon: float64(def.Di) / 1e6,
		nLat: int(def.Nj),
		nLon: int(def.Ni),
	}
	if g.nLat < 2 || g.nLon < 2 {
		return nil, fmt.Errorf("grid too small: %d x %d points", g.nLat, g.nLon)
	}
	if g.dLat == 0 || g.dLon <= 0 {
		return nil, fmt.Errorf("grid increments unusable: dLat %g, dLon %g", g.dLat, g.dLon)
	}
	if want := g.nLat * g.nLon; len(data) < want {
		return nil, fmt.Errorf("grid data: want %d points, got %d", want, len(data))
	}

	width := g.nLon
	if g.continuous() {
		width++
	}
	rows := make([][]float64, g.nLat)
	p := 0
	for i := range rows {
		row := make([]float64, width)
		copy(row, data[p:p+g.nLon])
		p += g.nLon
		if width > g.nLon {
			row[g.nLon] = row[0]
		}
		rows[i] = row
	}
	g.rows = rows
	return g, nil
}

// continuous reports whether the columns cover the full circle of longitude.
func (g *grid) continuous() bool {
	return math.Floor(float64(g.nLon)*g.dLon) >= 360
}

// at samples the field at a geographic point. The row index measures the
// distance from the first latitude, which serves north-up and south-down
// scans alike; the column index wraps modulo 360 degrees.
func (g *grid) at(lat, lon float64) (float64, error) {
	i := math.Abs((lat - g.lat0) / g.dLat)
	j := floorMod(lon-g.lon0, 360) / g.dLon

	fi := int(i)
	y := i - float64(fi)
	if fi >= g.nLat-1 {
		if fi == g.nLat-1 && y == 0 {
			fi, y = g.nLat-2, 1
		} else {
			return 0, fmt.Errorf("%w: latitude %.4f", ErrOutsideGrid, lat)
		}
	}

	width := len(g.rows[0])
	fj := int(j)
	x := j - float64(fj)
	if fj >= width-1 {
		if fj == width-1 && x == 0 {
			fj, x = width-2, 1
		} else {
			return 0, fmt.Errorf("%w: longitude %.4f", ErrOutsideGrid, lon)
		}
	}

	return bilinear(x, y,
		g.rows[fi][fj], g.rows[fi][fj+1],
		g.rows[fi+1][fj], g.rows[fi+1][fj+1]), nil
}

// bilinear blends the four surrounding samples; g10 is one column east of
// g00, g01 one row further along the scan.
func bilinear(x, y, g00, g10, g01, g11 float64) float64 {
	rx := 1 - x
	ry := 1 - y
	return g00*rx*ry + g10*x*ry + g01*rx*y + g11*x*y
}

// floorMod is the positive remainder of a/n.
func floorMod(a, n float64) float64 {
	return a - n*math.Floor(a/n)
}
