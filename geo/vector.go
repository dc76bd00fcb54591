package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/signalsfoundry/radar-geodesy/unit"
)

// degenerateEps is the magnitude below which vector denominators are treated
// as zero. Operations dividing by anything smaller fail instead of returning
// garbage.
const degenerateEps = 1e-10

var (
	// ErrZeroMagnitude reports a vector operation whose denominator is a
	// near-zero magnitude.
	ErrZeroMagnitude = errors.New("vector magnitude is near zero")
	// ErrZeroComponent reports a componentwise operation against a vector
	// with a near-zero component.
	ErrZeroComponent = errors.New("vector component is near zero")
	// ErrZeroDivisor reports a scalar division by a near-zero divisor.
	ErrZeroDivisor = errors.New("divisor is near zero")
)

// Cartesian is a frame-free 3D offset vector. Zero components are valid;
// the operations that divide by a component or a magnitude return an error
// when the denominator is near zero.
type Cartesian struct {
	X, Y, Z unit.Length
}

// NewCartesian builds a vector from three lengths.
func NewCartesian(x, y, z unit.Length) Cartesian {
	return Cartesian{X: x, Y: y, Z: z}
}

// CartesianMeters builds a vector from three components in meters.
func CartesianMeters(x, y, z float64) Cartesian {
	return Cartesian{X: unit.Meters(x), Y: unit.Meters(y), Z: unit.Meters(z)}
}

// Add returns c+o componentwise.
func (c Cartesian) Add(o Cartesian) Cartesian {
	return Cartesian{X: c.X.Add(o.X), Y: c.Y.Add(o.Y), Z: c.Z.Add(o.Z)}
}

// Sub returns c-o componentwise.
func (c Cartesian) Sub(o Cartesian) Cartesian {
	return Cartesian{X: c.X.Sub(o.X), Y: c.Y.Sub(o.Y), Z: c.Z.Sub(o.Z)}
}

// Scale multiplies every component by f.
func (c Cartesian) Scale(f float64) Cartesian {
	return Cartesian{X: c.X.Scale(f), Y: c.Y.Scale(f), Z: c.Z.Scale(f)}
}

// Neg returns the negated vector.
func (c Cartesian) Neg() Cartesian {
	return Cartesian{X: c.X.Neg(), Y: c.Y.Neg(), Z: c.Z.Neg()}
}

// Divide divides every component by f. Near-zero f is an error.
func (c Cartesian) Divide(f float64) (Cartesian, error) {
	if math.Abs(f) < degenerateEps {
		return Cartesian{}, fmt.Errorf("%w: %g", ErrZeroDivisor, f)
	}
	return Cartesian{
		X: c.X.WithBase(c.X.Meters() / f),
		Y: c.Y.WithBase(c.Y.Meters() / f),
		Z: c.Z.WithBase(c.Z.Meters() / f),
	}, nil
}

// Ratio returns the componentwise quotient c/o. Any near-zero component of o
// is an error.
func (c Cartesian) Ratio(o Cartesian) (Cartesian, error) {
	if o.IsAnyZero(degenerateEps) {
		return Cartesian{}, fmt.Errorf("%w: ratio denominator", ErrZeroComponent)
	}
	return Cartesian{
		X: c.X.WithBase(c.X.Meters() / o.X.Meters()),
		Y: c.Y.WithBase(c.Y.Meters() / o.Y.Meters()),
		Z: c.Z.WithBase(c.Z.Meters() / o.Z.Meters()),
	}, nil
}

// Invert returns the componentwise reciprocal. Any near-zero component is an
// error.
func (c Cartesian) Invert() (Cartesian, error) {
	if c.IsAnyZero(degenerateEps) {
		return Cartesian{}, fmt.Errorf("%w: invert", ErrZeroComponent)
	}
	return Cartesian{
		X: c.X.WithBase(1.0 / c.X.Meters()),
		Y: c.Y.WithBase(1.0 / c.Y.Meters()),
		Z: c.Z.WithBase(1.0 / c.Z.Meters()),
	}, nil
}

// Dot returns the dot product of the base (meter) components.
func (c Cartesian) Dot(o Cartesian) float64 {
	return c.X.Meters()*o.X.Meters() + c.Y.Meters()*o.Y.Meters() + c.Z.Meters()*o.Z.Meters()
}

// Cross returns the cross product.
func (c Cartesian) Cross(o Cartesian) Cartesian {
	x1, y1, z1 := c.X.Meters(), c.Y.Meters(), c.Z.Meters()
	x2, y2, z2 := o.X.Meters(), o.Y.Meters(), o.Z.Meters()
	return Cartesian{
		X: c.X.WithBase(y1*z2 - z1*y2),
		Y: c.Y.WithBase(z1*x2 - x1*z2),
		Z: c.Z.WithBase(x1*y2 - y1*x2),
	}
}

// Magnitude returns the Euclidean norm.
func (c Cartesian) Magnitude() unit.Length {
	x, y, z := c.X.Meters(), c.Y.Meters(), c.Z.Meters()
	return unit.Meters(math.Sqrt(x*x + y*y + z*z))
}

// DistanceTo returns the Euclidean distance between the two vectors' tips.
func (c Cartesian) DistanceTo(o Cartesian) unit.Length {
	dx := c.X.Meters() - o.X.Meters()
	dy := c.Y.Meters() - o.Y.Meters()
	dz := c.Z.Meters() - o.Z.Meters()
	return unit.Meters(math.Sqrt(dx*dx + dy*dy + dz*dz))
}

// HypotXY returns the distance between the two vectors projected onto the
// XY plane.
func (c Cartesian) HypotXY(o Cartesian) unit.Length {
	dx := c.X.Meters() - o.X.Meters()
	dy := c.Y.Meters() - o.Y.Meters()
	return unit.Meters(math.Hypot(dx, dy))
}

// Normalize returns the unit vector in c's direction. A near-zero magnitude
// is an error.
func (c Cartesian) Normalize() (Cartesian, error) {
	mag := c.Magnitude().Meters()
	if mag < degenerateEps {
		return Cartesian{}, fmt.Errorf("%w: normalize", ErrZeroMagnitude)
	}
	return Cartesian{
		X: c.X.WithBase(c.X.Meters() / mag),
		Y: c.Y.WithBase(c.Y.Meters() / mag),
		Z: c.Z.WithBase(c.Z.Meters() / mag),
	}, nil
}

// AngleBetween returns the angle between the two vectors. The cosine is
// clamped into [-1, 1] before acos; a near-zero magnitude on either side is
// an error.
func (c Cartesian) AngleBetween(o Cartesian) (unit.Angle, error) {
	mags := c.Magnitude().Meters() * o.Magnitude().Meters()
	if mags < degenerateEps {
		return unit.Angle{}, fmt.Errorf("%w: angle between", ErrZeroMagnitude)
	}
	cosTheta := math.Max(-1.0, math.Min(1.0, c.Dot(o)/mags))
	return unit.Radians(math.Acos(cosTheta)), nil
}

// Clamp folds every component into the range given by min and max (base
// meters) with the wrap mode.
func (c Cartesian) Clamp(min, max Cartesian, mode unit.WrapMode) Cartesian {
	return Cartesian{
		X: c.X.WithBase(unit.Wrap(c.X.Meters(), min.X.Meters(), max.X.Meters(), mode)),
		Y: c.Y.WithBase(unit.Wrap(c.Y.Meters(), min.Y.Meters(), max.Y.Meters(), mode)),
		Z: c.Z.WithBase(unit.Wrap(c.Z.Meters(), min.Z.Meters(), max.Z.Meters(), mode)),
	}
}

// Equal reports whether all components agree within eps meters.
func (c Cartesian) Equal(o Cartesian, eps float64) bool {
	return math.Abs(c.X.Meters()-o.X.Meters()) <= eps &&
		math.Abs(c.Y.Meters()-o.Y.Meters()) <= eps &&
		math.Abs(c.Z.Meters()-o.Z.Meters()) <= eps
}

// IsZero reports whether all components are within eps of zero.
func (c Cartesian) IsZero(eps float64) bool {
	return math.Abs(c.X.Meters()) <= eps &&
		math.Abs(c.Y.Meters()) <= eps &&
		math.Abs(c.Z.Meters()) <= eps
}

// IsAnyZero reports whether any component is within eps of zero.
func (c Cartesian) IsAnyZero(eps float64) bool {
	return math.Abs(c.X.Meters()) <= eps ||
		math.Abs(c.Y.Meters()) <= eps ||
		math.Abs(c.Z.Meters()) <= eps
}

// IsValid reports whether all components are finite.
func (c Cartesian) IsValid() bool {
	return c.X.IsValid() && c.Y.IsValid() && c.Z.IsValid()
}

// ToSpherical reads the vector as azimuth/elevation/range, where azimuth is
// the mathematical angle in the XY plane, atan2(y, x), and elevation is the
// angle above that plane. A magnitude under 1e-10 yields the zero Spherical.
func (c Cartesian) ToSpherical() Spherical {
	mag := c.Magnitude().Meters()
	if mag < degenerateEps {
		return Spherical{}
	}
	az := math.Atan2(c.Y.Meters(), c.X.Meters())
	el := math.Asin(c.Z.Meters() / mag)
	return Spherical{
		Azimuth:   unit.Radians(az),
		Elevation: unit.Radians(el),
		Range:     unit.Meters(mag),
	}
}

func (c Cartesian) String() string {
	return fmt.Sprintf("X: %s, Y: %s, Z: %s", c.X, c.Y, c.Z)
}
