// Package atmosphere models the lower atmosphere for radio propagation: a
// two-layer International Standard Atmosphere profile, ITU-R P.453 radio
// refractivity, modified refractivity, and the effective-Earth-radius
// k-factor derived from the refractivity gradient between two altitudes.
//
// The package depends on the quantity types only. All functions are pure;
// Standard is an immutable configuration value safe for concurrent use.
package atmosphere
