package model

import "time"

// GeoPoint is a geocoded location string.
type GeoPoint struct {
	Query    string    `json:"query"`
	Lat      float64   `json:"lat"`
	Lon      float64   `json:"lon"`
	CachedAt time.Time `json:"cached_at"`
}
