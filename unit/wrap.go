package unit

import "math"

// WrapMode selects how a value is folded back into a [min, max] range.
type WrapMode int

const (
	// WrapNone leaves the value untouched.
	WrapNone WrapMode = iota
	// WrapBound clamps the value to the nearest bound.
	WrapBound
	// WrapCycle wraps modularly from one bound to the other.
	WrapCycle
	// WrapBounce reflects off the bounds, reversing direction.
	WrapBounce
)

// Wrap folds value into [min, max] according to mode. For the range [-90, 90]
// and an input of 100: WrapBound gives 90, WrapCycle gives -80, WrapBounce
// gives 80. Non-finite values and inverted ranges are returned untouched.
func Wrap(value, min, max float64, mode WrapMode) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || min > max {
		return value
	}
	switch mode {
	case WrapBound:
		return wrapBound(value, min, max)
	case WrapCycle:
		return wrapCycle(value, min, max)
	case WrapBounce:
		return wrapBounce(value, min, max)
	default:
		return value
	}
}

// InRange reports whether value lies in [min, max].
func InRange(value, min, max float64) bool {
	return max > min && value >= min && value <= max
}

func wrapBound(value, min, max float64) float64 {
	if InRange(value, min, max) {
		return value
	}
	return math.Max(min, math.Min(value, max))
}

func wrapCycle(value, min, max float64) float64 {
	if InRange(value, min, max) {
		return value
	}
	span := max - min
	if span <= 0 {
		return value
	}
	for value < min {
		value += span
	}
	for value > max {
		value -= span
	}
	return value
}

func wrapBounce(value, min, max float64) float64 {
	if InRange(value, min, max) {
		return value
	}
	if max <= min {
		return value
	}
	for value < min || value > max {
		if value > max {
			value = 2*max - value
		} else {
			value = 2*min - value
		}
	}
	return value
}
