package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// Snapshot captures the full output of a scenario run for golden-file
// comparison. Serialized through canonical JSON so identical runs produce
// byte-identical files.
func (r *Result) toCanonicalMap() map[string]any {
	steps := make([]any, len(r.Steps))
	for i, step := range r.Steps {
		steps[i] = map[string]any{
			"op":     step.Op,
			"output": step.Output,
		}
	}
	return map[string]any{
		"scenario_name": r.ScenarioName,
		"steps":         steps,
	}
}

// RunWithGolden executes a scenario and compares its snapshot against the
// golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	snapshot, err := catalog.MarshalCanonical(result.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot)
	return nil
}
