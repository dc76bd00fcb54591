// Package track models target tracks for radar work: time-ordered position
// reports keyed by ICAO 24-bit address, an OpenSky-style CSV reader, a
// concurrency-safe in-memory store, and a TLE ephemeris source that turns
// satellite passes into track points.
package track
