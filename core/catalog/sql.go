package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// instrumentsQuery reads the host application's instrument tables. Section
// and group are optional; an instrument without an abbreviation is listed
// under its name.
const instrumentsQuery = `
SELECT
	i.id,
	COALESCE(NULLIF(TRIM(i.abbreviation), ''), i.name),
	i.name,
	COALESCE(i.is_primary, 0),
	COALESCE(i.weight, 0),
	COALESCE(s.name, ''),
	COALESCE(s.weight, 0),
	COALESCE(g.name, ''),
	COALESCE(g.weight, 0)
FROM instruments i
LEFT JOIN instrument_sections s ON s.id = i.instrument_section_id
LEFT JOIN instrument_groups g ON g.id = i.instrument_group_id
ORDER BY i.id`

// LoadSQL builds a catalog from the instruments, instrument_sections and
// instrument_groups tables of db. The caller owns db and its driver.
func LoadSQL(ctx context.Context, db *sql.DB) (*Catalog, error) {
	rows, err := db.QueryContext(ctx, instrumentsQuery)
	if err != nil {
		return nil, fmt.Errorf("query instruments: %w", err)
	}
	defer rows.Close()

	var instruments []Instrument
	for rows.Next() {
		var inst Instrument
		if err := rows.Scan(
			&inst.ID,
			&inst.Abbreviation,
			&inst.Name,
			&inst.Primary,
			&inst.Weight,
			&inst.Section,
			&inst.SectionWeight,
			&inst.Group,
			&inst.GroupWeight,
		); err != nil {
			return nil, fmt.Errorf("scan instrument: %w", err)
		}
		inst.Abbreviation = strings.TrimSpace(inst.Abbreviation)
		instruments = append(instruments, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read instruments: %w", err)
	}

	return New(instruments)
}
