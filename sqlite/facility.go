package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/animalloo/animalloo"
)

// Compile-time interface verification.
var _ animalloo.FacilityService = (*FacilityService)(nil)

// FacilityService implements animalloo.FacilityService using SQLite. It is
// strictly a read path over the catalog: rows come back raw and untyped, and
// callers normalize them.
type FacilityService struct {
	db *DB
}

// NewFacilityService creates a new FacilityService.
func NewFacilityService(db *DB) *FacilityService {
	return &FacilityService{db: db}
}

// FindRows retrieves raw rows matching the filter. An empty category set
// means no category restriction; a keyword restricts to rows whose name or
// description contains it case-insensitively; a district must match exactly.
func (s *FacilityService) FindRows(ctx context.Context, filter animalloo.RowFilter) ([]animalloo.Row, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT raw FROM facilities WHERE 1=1")

	if len(filter.Categories) > 0 {
		query.WriteString(" AND category IN (?" + strings.Repeat(", ?", len(filter.Categories)-1) + ")")
		for _, c := range filter.Categories {
			args = append(args, string(c))
		}
	}
	if filter.Keyword != nil {
		query.WriteString(" AND (instr(lower(name), lower(?)) > 0 OR instr(lower(description), lower(?)) > 0)")
		args = append(args, *filter.Keyword, *filter.Keyword)
	}
	if filter.District != nil {
		query.WriteString(" AND district = ?")
		args = append(args, *filter.District)
	}

	query.WriteString(" ORDER BY rowid ASC")

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, animalloo.Errorf(animalloo.EUNAVAILABLE, "facility catalog unavailable: %v", err)
	}
	defer rows.Close()

	var out []animalloo.Row
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, animalloo.Errorf(animalloo.EUNAVAILABLE, "facility catalog unavailable: %v", err)
		}

		row, err := decodeRaw(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, animalloo.Errorf(animalloo.EUNAVAILABLE, "facility catalog unavailable: %v", err)
	}

	return out, nil
}

// FindRowByID retrieves a single raw row by its identifier.
func (s *FacilityService) FindRowByID(ctx context.Context, id string) (animalloo.Row, error) {
	var raw string

	err := s.db.QueryRowContext(ctx, "SELECT raw FROM facilities WHERE id = ?", id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, animalloo.Errorf(animalloo.ENOTFOUND, "facility %q not found", id)
	}
	if err != nil {
		return nil, animalloo.Errorf(animalloo.EUNAVAILABLE, "facility catalog unavailable: %v", err)
	}

	return decodeRaw(raw)
}

// FindDistricts retrieves every district, ordered by name.
func (s *FacilityService) FindDistricts(ctx context.Context) ([]*animalloo.District, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, latitude, longitude FROM districts ORDER BY name ASC")
	if err != nil {
		return nil, animalloo.Errorf(animalloo.EUNAVAILABLE, "facility catalog unavailable: %v", err)
	}
	defer rows.Close()

	var districts []*animalloo.District
	for rows.Next() {
		var d animalloo.District
		var lat, lon sql.NullFloat64

		if err := rows.Scan(&d.Name, &lat, &lon); err != nil {
			return nil, animalloo.Errorf(animalloo.EUNAVAILABLE, "facility catalog unavailable: %v", err)
		}
		if lat.Valid && lon.Valid {
			d.Location = &animalloo.GeoPoint{Lat: lat.Float64, Lon: lon.Float64}
		}

		districts = append(districts, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, animalloo.Errorf(animalloo.EUNAVAILABLE, "facility catalog unavailable: %v", err)
	}

	return districts, nil
}

// decodeRaw parses a stored source record back into a raw row.
func decodeRaw(raw string) (animalloo.Row, error) {
	var row animalloo.Row
	if err := json.Unmarshal([]byte(raw), &row); err != nil {
		return nil, animalloo.Errorf(animalloo.EINTERNAL, "corrupt catalog row: %v", err)
	}
	return row, nil
}
