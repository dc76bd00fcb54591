// Package weather samples surface weather from GRIB2 forecast files.
//
// A Dataset holds the 2 m temperature, 2 m relative humidity and surface
// pressure fields of one forecast and interpolates an atmosphere.Profile
// at a geodetic position. A Source caches the latest good dataset read
// from a file and is safe to refresh and sample concurrently.
package weather
