// Package animalloo provides location-aware search over a directory of
// pet-related facilities. A natural-language query is interpreted into a
// structured filter (categories, radius, optional keyword) and applied
// against a geolocated catalog, returning matches ordered by distance.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/).
package animalloo
