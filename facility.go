package animalloo

import "context"

// GeoPoint is a WGS84 coordinate pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Row is one raw facility record as loaded from the catalog source, before
// normalization. Column names vary across sources; NormalizeRow maps them
// onto the canonical spelling.
type Row map[string]any

// Facility is the canonical facility record shape. Every read path (proximity
// search, district listing, detail lookup) produces this shape via
// FacilityFromRow, regardless of how the backing source spells its columns.
type Facility struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        Category  `json:"category"`
	District        string    `json:"district"`
	LotAddress      string    `json:"lotAddress"`
	RoadAddress     string    `json:"roadAddress"`
	Phone           string    `json:"phone"`
	Description     string    `json:"description"`
	Website         string    `json:"website"`
	Parking         bool      `json:"parking"`
	PetFriendly     bool      `json:"petFriendly"`
	AdmissionFee    string    `json:"admissionFee"`
	PetRestrictions string    `json:"petRestrictions"`
	Location        *GeoPoint `json:"location,omitempty"`
}

// DistancedFacility is a Facility annotated with its great-circle distance
// from a query origin. DistanceKm is never negative and is reported rounded
// to two decimal places.
type DistancedFacility struct {
	Facility
	DistanceKm float64 `json:"distanceKm"`
}

// District is one administrative district covered by the catalog.
type District struct {
	Name     string    `json:"name"`
	Location *GeoPoint `json:"location,omitempty"`
}

// RowFilter restricts the rows returned by FindRows. All fields compose:
// an empty Categories slice means no category restriction, a nil Keyword
// means no keyword restriction, a nil District means no district restriction.
type RowFilter struct {
	// Categories keeps only rows whose category is a member. Empty = all.
	Categories []Category

	// Keyword keeps only rows whose name or description contains the value,
	// case-insensitively.
	Keyword *string

	// District keeps only rows whose district equals the value exactly.
	District *string
}

// FacilityService is a read path over the facility catalog. Implementations
// are read-only: zero matches yields an empty slice, never an error. A
// catalog that cannot be opened or read surfaces as EUNAVAILABLE.
type FacilityService interface {
	// FindRows retrieves raw rows matching the filter.
	FindRows(ctx context.Context, filter RowFilter) ([]Row, error)

	// FindRowByID retrieves a single raw row by its identifier.
	// Returns ENOTFOUND if no such row exists.
	FindRowByID(ctx context.Context, id string) (Row, error)

	// FindDistricts retrieves every district, ordered by name.
	FindDistricts(ctx context.Context) ([]*District, error)
}
