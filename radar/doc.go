// Package radar converts between radar-native detections and geodetic
// positions through the effective-Earth-radius refraction model. Inflating
// the Earth's radius by the k-factor straightens refracted rays, so a
// detection can be solved on a plane triangle spanning the Earth's center,
// the radar, and the target.
//
// Converter carries the Earth model and the refraction configuration. Its
// zero value converts over WGS84 with standard 4/3 refraction; the
// package-level functions are shorthands for that zero value.
package radar
