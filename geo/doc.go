// Package geo provides 3D vector algebra, geodetic and geocentric point
// representations, local tangent-plane (ENU) frames, and Earth-model
// abstractions with ellipsoidal (WGS84) and spherical variants.
//
// All point types are immutable values. Operations never mutate a receiver;
// they return new values. Earth-model-dependent operations take the Model
// explicitly so that no global model selection exists and calls are safe
// from any goroutine.
package geo
