package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// GetBelt returns one belt with its material profile attached, or
// sql.ErrNoRows when the key is unknown.
func (s *Store) GetBelt(ctx context.Context, catalogKey string) (catalog.BeltCatalogItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT catalog_key, display_name, piw, pil, thickness, min_dia_no_vguide, min_dia_with_vguide
		FROM belts
		WHERE catalog_key = ?
	`, catalogKey)

	var belt catalog.BeltCatalogItem
	err := row.Scan(&belt.CatalogKey, &belt.DisplayName, &belt.PIW, &belt.PIL,
		&belt.Thickness, &belt.MinDiaNoVGuide, &belt.MinDiaWithVGuide)
	if err != nil {
		return catalog.BeltCatalogItem{}, fmt.Errorf("get belt %q: %w", catalogKey, err)
	}

	profile, err := s.readProfile(ctx, catalogKey)
	if err != nil {
		return catalog.BeltCatalogItem{}, err
	}
	belt.MaterialProfile = profile
	return belt, nil
}

// ListBelts returns every belt with profiles attached, ordered
// deterministically by catalog key.
func (s *Store) ListBelts(ctx context.Context) ([]catalog.BeltCatalogItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT catalog_key, display_name, piw, pil, thickness, min_dia_no_vguide, min_dia_with_vguide
		FROM belts
		ORDER BY catalog_key COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list belts: %w", err)
	}
	defer rows.Close()

	belts := []catalog.BeltCatalogItem{}
	for rows.Next() {
		var belt catalog.BeltCatalogItem
		if err := rows.Scan(&belt.CatalogKey, &belt.DisplayName, &belt.PIW, &belt.PIL,
			&belt.Thickness, &belt.MinDiaNoVGuide, &belt.MinDiaWithVGuide); err != nil {
			return nil, fmt.Errorf("scan belt: %w", err)
		}
		belts = append(belts, belt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate belts: %w", err)
	}

	for i := range belts {
		profile, err := s.readProfile(ctx, belts[i].CatalogKey)
		if err != nil {
			return nil, err
		}
		belts[i].MaterialProfile = profile
	}
	return belts, nil
}

// readProfile returns the material profile for a belt, or nil when the
// belt has none.
func (s *Store) readProfile(ctx context.Context, beltKey string) (*catalog.MaterialProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT material_family, min_dia_no_vguide_in, min_dia_with_vguide_in,
		       supports_banding, banding_min_dia_no_vguide_in, banding_min_dia_with_vguide_in
		FROM material_profiles
		WHERE belt_key = ?
	`, beltKey)

	var p catalog.MaterialProfile
	err := row.Scan(&p.MaterialFamily, &p.MinDiaNoVGuideIn, &p.MinDiaWithVGuideIn,
		&p.SupportsBanding, &p.BandingMinDiaNoVGuideIn, &p.BandingMinDiaWithVGuideIn)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile for %q: %w", beltKey, err)
	}
	return &p, nil
}

// ListPulleys returns every pulley ordered deterministically by catalog
// key, so repeated filter runs see the same candidate order.
func (s *Store) ListPulleys(ctx context.Context) ([]catalog.PulleyCatalogItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT catalog_key, display_name, diameter, face_width_min, face_width_max,
		       construction, shaft_arrangement, lagged, lagging_thickness_in, lagging_material,
		       allow_head_drive, allow_tail, allow_snub, allow_bend, allow_takeup,
		       max_belt_speed, is_preferred
		FROM pulleys
		ORDER BY catalog_key COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list pulleys: %w", err)
	}
	defer rows.Close()

	pulleys := []catalog.PulleyCatalogItem{}
	for rows.Next() {
		var p catalog.PulleyCatalogItem
		var construction, shaft string
		if err := rows.Scan(&p.CatalogKey, &p.DisplayName, &p.Diameter, &p.FaceWidthMin, &p.FaceWidthMax,
			&construction, &shaft, &p.Lagged, &p.LaggingThicknessIn, &p.LaggingMaterial,
			&p.AllowHeadDrive, &p.AllowTail, &p.AllowSnub, &p.AllowBend, &p.AllowTakeup,
			&p.MaxBeltSpeed, &p.IsPreferred); err != nil {
			return nil, fmt.Errorf("scan pulley: %w", err)
		}
		p.Construction = catalog.Construction(construction)
		p.Shaft = catalog.ShaftArrangement(shaft)
		pulleys = append(pulleys, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pulleys: %w", err)
	}
	return pulleys, nil
}

// ListGearmotorsBySeries returns one vendor series' performance points
// ordered deterministically by part number. The stable ranking in the
// selector preserves this order for full ties.
func (s *Store) ListGearmotorsBySeries(ctx context.Context, vendor, series string) ([]catalog.GearmotorCandidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT part_number, vendor, series, size_code, motor_hp, output_rpm, output_torque, service_factor_catalog
		FROM gearmotors
		WHERE vendor = ? AND series = ?
		ORDER BY part_number COLLATE BINARY ASC
	`, vendor, series)
	if err != nil {
		return nil, fmt.Errorf("list gearmotors: %w", err)
	}
	defer rows.Close()

	candidates := []catalog.GearmotorCandidate{}
	for rows.Next() {
		var gm catalog.GearmotorCandidate
		if err := rows.Scan(&gm.PartNumber, &gm.Vendor, &gm.Series, &gm.SizeCode,
			&gm.MotorHP, &gm.OutputRPM, &gm.OutputTorque, &gm.ServiceFactorCatalog); err != nil {
			return nil, fmt.Errorf("scan gearmotor: %w", err)
		}
		candidates = append(candidates, gm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gearmotors: %w", err)
	}
	return candidates, nil
}

// CountSelectionRuns returns the number of recorded selection audit rows.
func (s *Store) CountSelectionRuns(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM selection_runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count selection runs: %w", err)
	}
	return count, nil
}
