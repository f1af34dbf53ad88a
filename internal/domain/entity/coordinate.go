// Package entity contains the core business objects of the project.
package entity

// Coordinate is a geographic point in decimal degrees.
// Latitude is in [-90, 90], longitude in [-180, 180].
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
