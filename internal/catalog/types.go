package catalog

// Station identifies the functional position of a pulley in a conveyor loop.
type Station string

const (
	StationHeadDrive Station = "head_drive"
	StationTail      Station = "tail"
	StationSnub      Station = "snub"
	StationBend      Station = "bend"
	StationTakeup    Station = "takeup"
)

// ValidStations defines the allowed station values.
var ValidStations = map[Station]bool{
	StationHeadDrive: true,
	StationTail:      true,
	StationSnub:      true,
	StationBend:      true,
	StationTakeup:    true,
}

// Construction identifies the pulley shell construction.
type Construction string

const (
	ConstructionDrum   Construction = "DRUM"
	ConstructionWing   Construction = "WING"
	ConstructionSpiral Construction = "SPIRAL"
)

// ShaftArrangement identifies how the pulley mounts to its shaft.
type ShaftArrangement string

const (
	ShaftThrough          ShaftArrangement = "THROUGH_SHAFT"
	ShaftInternalBearings ShaftArrangement = "INTERNAL_BEARINGS"
)

// BeltCatalogItem is a static belt definition.
//
// MinDiaNoVGuide/MinDiaWithVGuide are the legacy catalog columns; a
// MaterialProfile, when present, can override either independently (see
// engine.ResolveMinPulleyDiameters). Immutable per catalog revision.
type BeltCatalogItem struct {
	CatalogKey  string `json:"catalog_key"`
	DisplayName string `json:"display_name"`

	// Physical ratings.
	PIW       float64 `json:"piw"`       // pounds per inch of width
	PIL       float64 `json:"pil"`       // pounds per inch of length
	Thickness float64 `json:"thickness"` // inches

	// Legacy minimum pulley diameter columns, inches.
	MinDiaNoVGuide   float64 `json:"min_dia_no_vguide"`
	MinDiaWithVGuide float64 `json:"min_dia_with_vguide"`

	MaterialProfile *MaterialProfile `json:"material_profile,omitempty"`
}

// MaterialProfile is the optional richer material description attached to a
// belt. Each diameter field is independently optional; a nil pointer means
// "not specified, fall back to the legacy column".
//
// Banding minimum fields are only meaningful when SupportsBanding is true.
// Presence without the flag is a validation error, not a silent ignore.
type MaterialProfile struct {
	MaterialFamily string `json:"material_family"`

	MinDiaNoVGuideIn   *float64 `json:"min_dia_no_vguide_in,omitempty"`
	MinDiaWithVGuideIn *float64 `json:"min_dia_with_vguide_in,omitempty"`

	SupportsBanding           bool     `json:"supports_banding"`
	BandingMinDiaNoVGuideIn   *float64 `json:"banding_min_dia_no_vguide_in,omitempty"`
	BandingMinDiaWithVGuideIn *float64 `json:"banding_min_dia_with_vguide_in,omitempty"`
}

// DiameterSource records which data source resolved an effective minimum
// diameter.
type DiameterSource string

const (
	SourceCatalog         DiameterSource = "catalog"
	SourceMaterialProfile DiameterSource = "material_profile"
)

// BandingInfo reports banding support for a resolved belt. The two minimum
// fields are omitted (nil) when the profile does not define them; they are
// never defaulted.
type BandingInfo struct {
	Supported       bool     `json:"supported"`
	MinNoVGuideIn   *float64 `json:"min_no_vguide_in,omitempty"`
	MinWithVGuideIn *float64 `json:"min_with_vguide_in,omitempty"`
}

// EffectiveMinPulleyDiameters is the result of resolving a belt's minimum
// pulley diameters across the legacy columns and the material profile.
//
// Source is SourceMaterialProfile if AT LEAST ONE of the two diameter fields
// came from the profile, even if the other fell back to the legacy column.
type EffectiveMinPulleyDiameters struct {
	NoVGuide   float64        `json:"no_vguide"`
	WithVGuide float64        `json:"with_vguide"`
	Source     DiameterSource `json:"source"`
	Banding    *BandingInfo   `json:"banding,omitempty"`
}

// PulleyCatalogItem holds the dimensional and construction facts for one
// pulley catalog row.
//
// Invariant (hard constraint, enforced at catalog-write time AND re-derived
// defensively at filter time): if ShaftArrangement is INTERNAL_BEARINGS,
// AllowTail must be true and every other station flag false.
type PulleyCatalogItem struct {
	CatalogKey  string `json:"catalog_key"`
	DisplayName string `json:"display_name"`

	Diameter     float64          `json:"diameter"` // bare shell diameter, inches
	FaceWidthMin float64          `json:"face_width_min"`
	FaceWidthMax float64          `json:"face_width_max"`
	Construction Construction     `json:"construction"`
	Shaft        ShaftArrangement `json:"shaft_arrangement"`

	Lagged             bool     `json:"lagged"`
	LaggingThicknessIn *float64 `json:"lagging_thickness_in,omitempty"`
	LaggingMaterial    string   `json:"lagging_material,omitempty"`

	// Per-station eligibility flags.
	AllowHeadDrive bool `json:"allow_head_drive"`
	AllowTail      bool `json:"allow_tail"`
	AllowSnub      bool `json:"allow_snub"`
	AllowBend      bool `json:"allow_bend"`
	AllowTakeup    bool `json:"allow_takeup"`

	MaxBeltSpeed *float64 `json:"max_belt_speed,omitempty"` // fpm, advisory
	IsPreferred  bool     `json:"is_preferred"`
}

// AllowsStation returns the stored eligibility flag for the given station.
// Unknown stations are not allowed (fail-closed).
func (p PulleyCatalogItem) AllowsStation(station Station) bool {
	switch station {
	case StationHeadDrive:
		return p.AllowHeadDrive
	case StationTail:
		return p.AllowTail
	case StationSnub:
		return p.AllowSnub
	case StationBend:
		return p.AllowBend
	case StationTakeup:
		return p.AllowTakeup
	default:
		return false
	}
}

// PulleyFilterCriteria is the requirement bundle evaluated against each
// candidate pulley. Optional fields are nil when not supplied.
type PulleyFilterCriteria struct {
	Station           Station  `json:"station"`
	FaceWidthRequired float64  `json:"face_width_required"`
	MinDiameter       *float64 `json:"min_diameter,omitempty"` // effective, inches
	BeltSpeed         *float64 `json:"belt_speed,omitempty"`   // fpm

	// Exact-match filters. When set, non-matching candidates are excluded
	// entirely from the result list rather than reported with issues.
	Diameter     *float64      `json:"diameter,omitempty"`
	Construction *Construction `json:"construction,omitempty"`
}

// Severity classifies a selection issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one pass/fail/warning finding attached to a candidate. Code
// values are a stable contract keyed on by downstream UI and tests.
type Issue struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// PulleySelectionResult is the per-candidate outcome of the compatibility
// filter: the candidate, its effective (lagging-adjusted) diameter, and all
// issues found. An empty Issues list means the candidate fully qualifies.
type PulleySelectionResult struct {
	Pulley            PulleyCatalogItem `json:"pulley"`
	EffectiveDiameter float64           `json:"effective_diameter"`
	Issues            []Issue           `json:"issues"`
}

// HasErrors reports whether any issue carries error severity. Warnings do
// not disqualify a candidate.
func (r PulleySelectionResult) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// GearmotorCandidate is one vendor performance point. The derived fields
// are zero until the selector computes them for a specific requirement set.
type GearmotorCandidate struct {
	Vendor     string `json:"vendor"`
	Series     string `json:"series"`
	SizeCode   string `json:"size_code"`
	PartNumber string `json:"part_number"`

	MotorHP              float64 `json:"motor_hp"`
	OutputRPM            float64 `json:"output_rpm"`
	OutputTorque         float64 `json:"output_torque"` // lb-in
	ServiceFactorCatalog float64 `json:"service_factor_catalog"`

	// Derived per selection; see engine.SelectGearmotor.
	AdjustedCapacity float64 `json:"adjusted_capacity,omitempty"`
	OversizeRatio    float64 `json:"oversize_ratio,omitempty"`
	SpeedDelta       float64 `json:"speed_delta,omitempty"`
	SpeedDeltaPct    float64 `json:"speed_delta_pct,omitempty"`
}

// GearmotorSelectionInputs is the requirement set for gearmotor selection.
//
// ChosenServiceFactor may be below 1.0 (no clamping is performed) but must
// be strictly positive. SpeedTolerancePct defaults to 15 when nil.
type GearmotorSelectionInputs struct {
	RequiredOutputRPM    float64  `json:"required_output_rpm"`
	RequiredOutputTorque float64  `json:"required_output_torque"` // lb-in
	ChosenServiceFactor  float64  `json:"chosen_service_factor"`
	SpeedTolerancePct    *float64 `json:"speed_tolerance_pct,omitempty"`
}

// GearmotorSelection is the ranked outcome of a selection run. SeriesUsed
// names the series the survivors came from; UsedFallback is true when the
// primary pool produced zero candidates and the fallback pool was consulted.
// Candidates may be empty - that is a valid terminal outcome, not an error.
type GearmotorSelection struct {
	Candidates   []GearmotorCandidate `json:"candidates"`
	SeriesUsed   string               `json:"series_used"`
	UsedFallback bool                 `json:"used_fallback"`
}
