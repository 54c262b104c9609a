package sqlite

import (
	"context"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/animalloo/animalloo"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Importer loads tabular catalog exports into the database. It is the only
// write path; everything else treats the catalog as read-only.
type Importer struct {
	db *DB
}

// NewImporter creates a new Importer.
func NewImporter(db *DB) *Importer {
	return &Importer{db: db}
}

// ImportFacilities reads a headed CSV of facility records and inserts them.
// Column spellings may be anything the normalizer knows; each row is stored
// verbatim as JSON with its predicate columns extracted. Rows without an
// identifier get a generated one. Byte-identical rows from earlier imports
// are skipped via a content hash. Returns the number of rows inserted.
func (im *Importer) ImportFacilities(ctx context.Context, r io.Reader) (int, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	inserted := 0
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return inserted, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		row := make(animalloo.Row, len(header))
		for i, col := range header {
			if i < len(record) && record[i] != "" {
				row[col] = record[i]
			}
		}

		// Hash the row before any id assignment so a re-import of the same
		// source file hashes identically.
		hash, err := hashRow(row)
		if err != nil {
			return inserted, err
		}

		canonical := animalloo.NormalizeRow(row)

		id, _ := canonical[animalloo.ColID].(string)
		if id == "" {
			id = uuid.New().String()
			row[animalloo.ColID] = id
		}

		raw, err := encodeRaw(row)
		if err != nil {
			return inserted, err
		}

		result, err := im.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO facilities (id, category, district, name, description, row_hash, raw)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id,
			textColumn(canonical, animalloo.ColCategory),
			textColumn(canonical, animalloo.ColDistrict),
			textColumn(canonical, animalloo.ColName),
			textColumn(canonical, animalloo.ColDescription),
			hash, raw)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert line %d: %w", line, err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}

	return inserted, nil
}

// ImportDistricts reads a headed CSV of districts (name plus optional
// coordinates) and upserts them. Returns the number of districts written.
func (im *Importer) ImportDistricts(ctx context.Context, r io.Reader) (int, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	written := 0
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		row := make(animalloo.Row, len(header))
		for i, col := range header {
			if i < len(record) && record[i] != "" {
				row[col] = record[i]
			}
		}
		canonical := animalloo.NormalizeRow(row)

		name := textColumn(canonical, animalloo.ColName)
		if name == "" {
			continue
		}

		var lat, lon any
		if v, ok := parseCoord(canonical[animalloo.ColLatitude]); ok {
			lat = v
		}
		if v, ok := parseCoord(canonical[animalloo.ColLongitude]); ok {
			lon = v
		}

		if _, err := im.db.ExecContext(ctx, `
			INSERT INTO districts (name, latitude, longitude)
			VALUES (?, ?, ?)
			ON CONFLICT (name) DO UPDATE SET latitude = excluded.latitude, longitude = excluded.longitude
		`, name, lat, lon); err != nil {
			return written, fmt.Errorf("failed to upsert line %d: %w", line, err)
		}
		written++
	}

	return written, nil
}

// hashRow computes the xxHash of a row's JSON encoding as a hex string.
// json.Marshal sorts map keys, so the hash is deterministic.
func hashRow(row animalloo.Row) (string, error) {
	raw, err := encodeRaw(row)
	if err != nil {
		return "", err
	}
	h := xxhash.Sum64String(raw)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b), nil
}

func encodeRaw(row animalloo.Row) (string, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return "", fmt.Errorf("failed to encode row: %w", err)
	}
	return string(raw), nil
}

func textColumn(row animalloo.Row, col string) string {
	s, _ := row[col].(string)
	return s
}

func parseCoord(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
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
