package animalloo

import "strconv"

// Canonical column names. Every read path produces rows keyed by these names
// after normalization.
const (
	ColID              = "id"
	ColName            = "name"
	ColCategory        = "category"
	ColDistrict        = "district"
	ColLotAddress      = "lot_address"
	ColRoadAddress     = "road_address"
	ColPhone           = "phone"
	ColDescription     = "description"
	ColWebsite         = "website"
	ColParking         = "parking_available"
	ColPetFriendly     = "pet_friendly"
	ColAdmissionFee    = "admission_fee"
	ColPetRestrictions = "pet_restrictions"
	ColLatitude        = "latitude"
	ColLongitude       = "longitude"
)

// columnAliases is the single mapping table from every known source-column
// spelling to its canonical name. Canonical names are absent from the table,
// so normalization is idempotent; unknown columns pass through unchanged.
var columnAliases = map[string]string{
	"ID":          ColID,
	"Id":          ColID,
	"facility_id": ColID,

	"Name":          ColName,
	"facility_name": ColName,

	"Category": ColCategory,

	"District": ColDistrict,
	"sigungu":  ColDistrict,

	"LotAddress":    ColLotAddress,
	"jibun_address": ColLotAddress,

	"RoadAddress": ColRoadAddress,
	"Address":     ColRoadAddress,
	"address":     ColRoadAddress,

	"Phone":        ColPhone,
	"tel":          ColPhone,
	"phone_number": ColPhone,

	"Description": ColDescription,

	"Website":  ColWebsite,
	"homepage": ColWebsite,

	"ParkingAvailable": ColParking,
	"parking":          ColParking,

	"PetFriendly": ColPetFriendly,

	"AdmissionFeeInfo":   ColAdmissionFee,
	"admission_fee_info": ColAdmissionFee,

	"PetRestrictions": ColPetRestrictions,
	"PetRestrictInfo": ColPetRestrictions,

	"Latitude": ColLatitude,
	"lat":      ColLatitude,

	"Longitude": ColLongitude,
	"lon":       ColLongitude,
	"lng":       ColLongitude,
}

// NormalizeRow maps every known source-column spelling in row onto its
// canonical name. Columns not covered by the mapping pass through unchanged
// under their original name. Normalizing an already-canonical row is a no-op.
func NormalizeRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		if canonical, ok := columnAliases[k]; ok {
			k = canonical
		}
		out[k] = v
	}
	return out
}

// FacilityFromRow normalizes row and coerces it into the canonical Facility
// shape. The identifier becomes a string regardless of its source type.
// A row whose coordinate columns are absent or non-numeric yields a Facility
// with a nil Location rather than an error.
func FacilityFromRow(row Row) *Facility {
	r := NormalizeRow(row)

	f := &Facility{
		ID:              stringValue(r[ColID]),
		Name:            stringValue(r[ColName]),
		Category:        Category(stringValue(r[ColCategory])),
		District:        stringValue(r[ColDistrict]),
		LotAddress:      stringValue(r[ColLotAddress]),
		RoadAddress:     stringValue(r[ColRoadAddress]),
		Phone:           stringValue(r[ColPhone]),
		Description:     stringValue(r[ColDescription]),
		Website:         stringValue(r[ColWebsite]),
		Parking:         boolValue(r[ColParking]),
		PetFriendly:     boolValue(r[ColPetFriendly]),
		AdmissionFee:    stringValue(r[ColAdmissionFee]),
		PetRestrictions: stringValue(r[ColPetRestrictions]),
	}

	lat, okLat := floatValue(r[ColLatitude])
	lon, okLon := floatValue(r[ColLongitude])
	if okLat && okLon {
		f.Location = &GeoPoint{Lat: lat, Lon: lon}
	}

	return f
}

// stringValue coerces a raw column value to a string. Numeric identifiers
// from JSON sources arrive as float64 and must not render in exponent form.
func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// floatValue coerces a raw column value to a float64, reporting whether the
// value was present and numeric.
func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// boolValue coerces a raw column value to a bool. Sources spell truth as
// booleans, "true"/"y"/"1" strings, or nonzero numbers.
func boolValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch t {
		case "true", "TRUE", "True", "y", "Y", "1":
			return true
		}
		return false
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return false
	}
}
