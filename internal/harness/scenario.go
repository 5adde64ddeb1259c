package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Step operations.
const (
	OpMinDiameters    = "min_diameters"
	OpPulleyFilter    = "pulley_filter"
	OpGearmotorSelect = "gearmotor_select"
	OpTracking        = "tracking"
)

// Scenario defines a conformance test scenario: a named sequence of
// decision-engine invocations whose combined output is snapshotted.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps are executed in order; each contributes one snapshot entry.
	Steps []Step `yaml:"steps"`
}

// Step is one decision-engine invocation. Op selects the engine; the
// remaining fields are per-op and ignored by the others.
type Step struct {
	Op string `yaml:"op"`

	// min_diameters: named belt fixture ("legacy" or "profiled").
	Belt string `yaml:"belt,omitempty"`

	// pulley_filter: named pulley fixtures and the filter criteria.
	Pulleys  []string      `yaml:"pulleys,omitempty"`
	Criteria *CriteriaSpec `yaml:"criteria,omitempty"`

	// gearmotor_select: inline performance points and the requirement set.
	Primary  []PointSpec `yaml:"primary,omitempty"`
	Fallback []PointSpec `yaml:"fallback,omitempty"`
	Inputs   *InputsSpec `yaml:"inputs,omitempty"`

	// tracking: the recommendation input.
	Tracking *TrackingSpec `yaml:"tracking,omitempty"`
}

// CriteriaSpec is the YAML shape of pulley filter criteria.
type CriteriaSpec struct {
	Station           string   `yaml:"station"`
	FaceWidthRequired float64  `yaml:"face_width_required"`
	MinDiameter       *float64 `yaml:"min_diameter,omitempty"`
	BeltSpeed         *float64 `yaml:"belt_speed,omitempty"`
	Diameter          *float64 `yaml:"diameter,omitempty"`
	Construction      *string  `yaml:"construction,omitempty"`
}

// PointSpec is one inline gearmotor performance point. Points build on the
// shared Vector VG-H fixture series unless a series override is given.
type PointSpec struct {
	PartNumber string  `yaml:"part_number"`
	HP         float64 `yaml:"hp"`
	RPM        float64 `yaml:"rpm"`
	Torque     float64 `yaml:"torque"`
	Series     string  `yaml:"series,omitempty"`
}

// InputsSpec is the YAML shape of gearmotor selection inputs.
type InputsSpec struct {
	RequiredOutputRPM    float64  `yaml:"required_output_rpm"`
	RequiredOutputTorque float64  `yaml:"required_output_torque"`
	ChosenServiceFactor  float64  `yaml:"chosen_service_factor"`
	SpeedTolerancePct    *float64 `yaml:"speed_tolerance_pct,omitempty"`
}

// TrackingSpec is the YAML shape of a tracking recommendation input.
type TrackingSpec struct {
	LengthIn float64 `yaml:"length_in"`
	WidthIn  float64 `yaml:"width_in"`

	ApplicationClass string `yaml:"application_class,omitempty"`
	BeltConstruction string `yaml:"belt_construction,omitempty"`

	Reversing        bool `yaml:"reversing,omitempty"`
	SideLoading      bool `yaml:"side_loading,omitempty"`
	LoadVariability  bool `yaml:"load_variability,omitempty"`
	Environment      bool `yaml:"environment,omitempty"`
	InstallationRisk bool `yaml:"installation_risk,omitempty"`

	TrackingPreference string `yaml:"tracking_preference,omitempty"`
}

// LoadScenario loads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// LoadScenarios loads every .yaml scenario under dir, sorted by filename
// for deterministic test ordering.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		scenario, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

// Validate checks the scenario's structural rules before execution.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario has no steps")
	}

	for i, step := range s.Steps {
		switch step.Op {
		case OpMinDiameters:
			if step.Belt == "" {
				return fmt.Errorf("step %d: min_diameters requires a belt", i)
			}
		case OpPulleyFilter:
			if len(step.Pulleys) == 0 {
				return fmt.Errorf("step %d: pulley_filter requires pulleys", i)
			}
			if step.Criteria == nil {
				return fmt.Errorf("step %d: pulley_filter requires criteria", i)
			}
		case OpGearmotorSelect:
			if step.Inputs == nil {
				return fmt.Errorf("step %d: gearmotor_select requires inputs", i)
			}
		case OpTracking:
			if step.Tracking == nil {
				return fmt.Errorf("step %d: tracking requires a tracking input", i)
			}
		default:
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
	}
	return nil
}
