package harness

import (
	"fmt"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
	"github.com/mc3abe-oss/conveyor-console/internal/engine"
	"github.com/mc3abe-oss/conveyor-console/internal/testutil"
)

// beltFixtures maps scenario belt names to the shared fixture set.
var beltFixtures = map[string]func() catalog.BeltCatalogItem{
	"legacy":   testutil.LegacyBelt,
	"profiled": testutil.ProfiledBelt,
}

// pulleyFixtures maps scenario pulley names to the shared fixture set.
var pulleyFixtures = map[string]func() catalog.PulleyCatalogItem{
	"standard_drum_4":         testutil.StandardDrum4,
	"lagged_drum_6":           testutil.LaggedDrum6,
	"internal_bearing_tail_4": testutil.InternalBearingTail4,
}

// StepResult is one executed step: the op that ran and its snapshot.
type StepResult struct {
	Op     string
	Output map[string]any
}

// Result is the outcome of running a scenario.
type Result struct {
	ScenarioName string
	Steps        []StepResult
}

// Run executes every step of a scenario against the decision engines and
// returns the collected snapshots. Execution is pure: no I/O, no clock, no
// randomness, so identical scenarios always produce identical results.
func Run(scenario *Scenario) (*Result, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	result := &Result{ScenarioName: scenario.Name}
	for i, step := range scenario.Steps {
		output, err := runStep(step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
		result.Steps = append(result.Steps, StepResult{Op: step.Op, Output: output})
	}
	return result, nil
}

func runStep(step Step) (map[string]any, error) {
	switch step.Op {
	case OpMinDiameters:
		makeBelt, ok := beltFixtures[step.Belt]
		if !ok {
			return nil, fmt.Errorf("unknown belt fixture %q", step.Belt)
		}
		belt := makeBelt()
		return minDiametersSnapshot(belt.CatalogKey, engine.ResolveMinPulleyDiameters(belt)), nil

	case OpPulleyFilter:
		pulleys := make([]catalog.PulleyCatalogItem, 0, len(step.Pulleys))
		for _, name := range step.Pulleys {
			makePulley, ok := pulleyFixtures[name]
			if !ok {
				return nil, fmt.Errorf("unknown pulley fixture %q", name)
			}
			pulleys = append(pulleys, makePulley())
		}
		criteria, err := step.Criteria.toCriteria()
		if err != nil {
			return nil, err
		}
		return pulleyFilterSnapshot(engine.FilterPulleys(pulleys, criteria)), nil

	case OpGearmotorSelect:
		selection, err := engine.SelectGearmotor(
			buildPoints(step.Primary), buildPoints(step.Fallback), step.Inputs.toInputs())
		if err != nil {
			return nil, err
		}
		return gearmotorSnapshot(selection), nil

	case OpTracking:
		return trackingSnapshot(engine.RecommendTracking(step.Tracking.toInput())), nil

	default:
		return nil, fmt.Errorf("unknown op %q", step.Op)
	}
}

// toCriteria converts the YAML criteria spec to the engine type.
func (c *CriteriaSpec) toCriteria() (catalog.PulleyFilterCriteria, error) {
	station := catalog.Station(c.Station)
	if !catalog.ValidStations[station] {
		return catalog.PulleyFilterCriteria{}, fmt.Errorf("invalid station %q", c.Station)
	}
	criteria := catalog.PulleyFilterCriteria{
		Station:           station,
		FaceWidthRequired: c.FaceWidthRequired,
		MinDiameter:       c.MinDiameter,
		BeltSpeed:         c.BeltSpeed,
		Diameter:          c.Diameter,
	}
	if c.Construction != nil {
		construction := catalog.Construction(*c.Construction)
		criteria.Construction = &construction
	}
	return criteria, nil
}

// toInputs converts the YAML inputs spec to the engine type.
func (in *InputsSpec) toInputs() catalog.GearmotorSelectionInputs {
	return catalog.GearmotorSelectionInputs{
		RequiredOutputRPM:    in.RequiredOutputRPM,
		RequiredOutputTorque: in.RequiredOutputTorque,
		ChosenServiceFactor:  in.ChosenServiceFactor,
		SpeedTolerancePct:    in.SpeedTolerancePct,
	}
}

// toInput converts the YAML tracking spec to the engine type.
func (t *TrackingSpec) toInput() catalog.TrackingRecommendationInput {
	return catalog.TrackingRecommendationInput{
		LengthIn:           t.LengthIn,
		WidthIn:            t.WidthIn,
		ApplicationClass:   t.ApplicationClass,
		BeltConstruction:   t.BeltConstruction,
		Reversing:          t.Reversing,
		SideLoading:        t.SideLoading,
		LoadVariability:    t.LoadVariability,
		Environment:        t.Environment,
		InstallationRisk:   t.InstallationRisk,
		TrackingPreference: catalog.TrackingMode(t.TrackingPreference),
	}
}

// buildPoints expands inline point specs onto the shared fixture series.
func buildPoints(specs []PointSpec) []catalog.GearmotorCandidate {
	points := make([]catalog.GearmotorCandidate, 0, len(specs))
	for _, spec := range specs {
		point := testutil.GearmotorPoint(spec.PartNumber, spec.HP, spec.RPM, spec.Torque)
		if spec.Series != "" {
			point.Series = spec.Series
		}
		points = append(points, point)
	}
	return points
}
