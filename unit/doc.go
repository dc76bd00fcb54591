// Package unit provides the physical quantities the geodesy and radar layers
// compute with: angles, lengths, pressures, and temperatures. Every quantity
// is an immutable value tagged with its unit and carrying a cached base-unit
// representation (radians, meters, pascals, kelvin). Arithmetic operates on
// base values and results keep the receiver's display unit.
//
// Angular factories apply the conventional wrap policies: azimuths cycle in
// [0°, 360°), longitudes cycle in [-180°, 180°), latitudes and elevations
// bounce (reflect) in [-90°, 90°].
package unit
