package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// UpsertBelt writes a belt row and its optional material profile in one
// transaction. The admin validators run first; a violating row is rejected
// with a *ValidationError and the database is untouched.
func (s *Store) UpsertBelt(ctx context.Context, belt catalog.BeltCatalogItem) error {
	if violations := catalog.ValidateBeltCatalogItem(belt); len(violations) > 0 {
		return &ValidationError{CatalogKey: belt.CatalogKey, Violations: violations}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert belt: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO belts
		(catalog_key, display_name, piw, pil, thickness, min_dia_no_vguide, min_dia_with_vguide)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(catalog_key) DO UPDATE SET
			display_name = excluded.display_name,
			piw = excluded.piw,
			pil = excluded.pil,
			thickness = excluded.thickness,
			min_dia_no_vguide = excluded.min_dia_no_vguide,
			min_dia_with_vguide = excluded.min_dia_with_vguide
	`,
		belt.CatalogKey,
		belt.DisplayName,
		belt.PIW,
		belt.PIL,
		belt.Thickness,
		belt.MinDiaNoVGuide,
		belt.MinDiaWithVGuide,
	)
	if err != nil {
		return fmt.Errorf("upsert belt: %w", err)
	}

	// Replace the profile row wholesale; a belt that dropped its profile
	// reverts to the legacy columns.
	if _, err := tx.ExecContext(ctx, `DELETE FROM material_profiles WHERE belt_key = ?`, belt.CatalogKey); err != nil {
		return fmt.Errorf("upsert belt profile: %w", err)
	}
	if p := belt.MaterialProfile; p != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO material_profiles
			(belt_key, material_family, min_dia_no_vguide_in, min_dia_with_vguide_in,
			 supports_banding, banding_min_dia_no_vguide_in, banding_min_dia_with_vguide_in)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			belt.CatalogKey,
			p.MaterialFamily,
			p.MinDiaNoVGuideIn,
			p.MinDiaWithVGuideIn,
			p.SupportsBanding,
			p.BandingMinDiaNoVGuideIn,
			p.BandingMinDiaWithVGuideIn,
		)
		if err != nil {
			return fmt.Errorf("upsert belt profile: %w", err)
		}
	}

	return tx.Commit()
}

// UpsertPulley writes a pulley row. This is the catalog-write half of the
// INTERNAL_BEARINGS constraint: a row violating the station rules never
// reaches the database. The filter re-derives the constraint at evaluation
// time regardless.
func (s *Store) UpsertPulley(ctx context.Context, pulley catalog.PulleyCatalogItem) error {
	if violations := catalog.ValidatePulleyCatalogItem(pulley); len(violations) > 0 {
		return &ValidationError{CatalogKey: pulley.CatalogKey, Violations: violations}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pulleys
		(catalog_key, display_name, diameter, face_width_min, face_width_max,
		 construction, shaft_arrangement, lagged, lagging_thickness_in, lagging_material,
		 allow_head_drive, allow_tail, allow_snub, allow_bend, allow_takeup,
		 max_belt_speed, is_preferred)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(catalog_key) DO UPDATE SET
			display_name = excluded.display_name,
			diameter = excluded.diameter,
			face_width_min = excluded.face_width_min,
			face_width_max = excluded.face_width_max,
			construction = excluded.construction,
			shaft_arrangement = excluded.shaft_arrangement,
			lagged = excluded.lagged,
			lagging_thickness_in = excluded.lagging_thickness_in,
			lagging_material = excluded.lagging_material,
			allow_head_drive = excluded.allow_head_drive,
			allow_tail = excluded.allow_tail,
			allow_snub = excluded.allow_snub,
			allow_bend = excluded.allow_bend,
			allow_takeup = excluded.allow_takeup,
			max_belt_speed = excluded.max_belt_speed,
			is_preferred = excluded.is_preferred
	`,
		pulley.CatalogKey,
		pulley.DisplayName,
		pulley.Diameter,
		pulley.FaceWidthMin,
		pulley.FaceWidthMax,
		string(pulley.Construction),
		string(pulley.Shaft),
		pulley.Lagged,
		pulley.LaggingThicknessIn,
		pulley.LaggingMaterial,
		pulley.AllowHeadDrive,
		pulley.AllowTail,
		pulley.AllowSnub,
		pulley.AllowBend,
		pulley.AllowTakeup,
		pulley.MaxBeltSpeed,
		pulley.IsPreferred,
	)
	if err != nil {
		return fmt.Errorf("upsert pulley: %w", err)
	}
	return nil
}

// UpsertGearmotor writes one vendor performance point keyed by part number.
func (s *Store) UpsertGearmotor(ctx context.Context, gm catalog.GearmotorCandidate) error {
	if gm.PartNumber == "" {
		return &ValidationError{CatalogKey: gm.PartNumber, Violations: []string{"part_number is required"}}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gearmotors
		(part_number, vendor, series, size_code, motor_hp, output_rpm, output_torque, service_factor_catalog)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(part_number) DO UPDATE SET
			vendor = excluded.vendor,
			series = excluded.series,
			size_code = excluded.size_code,
			motor_hp = excluded.motor_hp,
			output_rpm = excluded.output_rpm,
			output_torque = excluded.output_torque,
			service_factor_catalog = excluded.service_factor_catalog
	`,
		gm.PartNumber,
		gm.Vendor,
		gm.Series,
		gm.SizeCode,
		gm.MotorHP,
		gm.OutputRPM,
		gm.OutputTorque,
		gm.ServiceFactorCatalog,
	)
	if err != nil {
		return fmt.Errorf("upsert gearmotor: %w", err)
	}
	return nil
}

// SelectionRun is one audit record of a gearmotor selection invocation.
type SelectionRun struct {
	ID             string
	RequestedAt    time.Time
	Inputs         catalog.GearmotorSelectionInputs
	SeriesUsed     string
	UsedFallback   bool
	CandidateCount int
}

// RecordSelectionRun writes an audit record for one selector invocation and
// returns its generated id. Uses UUIDv7 so ids sort by creation time.
func (s *Store) RecordSelectionRun(ctx context.Context, in catalog.GearmotorSelectionInputs, sel catalog.GearmotorSelection) (string, error) {
	id := uuid.Must(uuid.NewV7()).String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO selection_runs
		(id, requested_at, required_output_rpm, required_output_torque,
		 chosen_service_factor, speed_tolerance_pct, series_used, used_fallback, candidate_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		time.Now().UTC().Format(time.RFC3339),
		in.RequiredOutputRPM,
		in.RequiredOutputTorque,
		in.ChosenServiceFactor,
		in.SpeedTolerancePct,
		sel.SeriesUsed,
		sel.UsedFallback,
		len(sel.Candidates),
	)
	if err != nil {
		return "", fmt.Errorf("record selection run: %w", err)
	}
	return id, nil
}
