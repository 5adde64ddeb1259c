package engine

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// Default speed tolerance when the caller does not supply one: the output
// RPM must fall within +/-15% of the requirement.
const DefaultSpeedTolerancePct = 15.0

// Float tie-break epsilons for the three-key ranking. These match the
// long-standing fixture behavior and must not drift.
const (
	oversizeRatioEpsilon = 0.001
	speedDeltaEpsilon    = 0.01
)

// SelectGearmotor evaluates the primary candidate pool against the
// requirement set and returns the ranked survivors. Only when the primary
// pool yields zero candidates after filtering is the full filter/rank
// pipeline re-run against the fallback pool; series are never mixed within
// one result set.
//
// Returns an *InputError when the requirement set itself is invalid - that
// is a caller error, distinct from a legitimate zero-candidate outcome.
func SelectGearmotor(primary, fallback []catalog.GearmotorCandidate, in catalog.GearmotorSelectionInputs) (catalog.GearmotorSelection, error) {
	if violations := catalog.ValidateGearmotorSelectionInputs(in); len(violations) > 0 {
		return catalog.GearmotorSelection{}, NewInputError("select gearmotor", violations)
	}

	ranked := rankCandidates(primary, in)
	if len(ranked) > 0 {
		return catalog.GearmotorSelection{
			Candidates: ranked,
			SeriesUsed: poolSeries(primary),
		}, nil
	}

	ranked = rankCandidates(fallback, in)
	if len(ranked) > 0 {
		return catalog.GearmotorSelection{
			Candidates:   ranked,
			SeriesUsed:   poolSeries(fallback),
			UsedFallback: true,
		}, nil
	}

	// Zero candidates from both pools is a valid terminal outcome.
	return catalog.GearmotorSelection{
		Candidates: []catalog.GearmotorCandidate{},
		SeriesUsed: poolSeries(primary),
	}, nil
}

// rankCandidates runs the full filter/rank pipeline over one pool:
// derive normalized capacity, apply the capacity and speed-window filters,
// then sort by the three-key lexicographic ranking.
func rankCandidates(pool []catalog.GearmotorCandidate, in catalog.GearmotorSelectionInputs) []catalog.GearmotorCandidate {
	tolerancePct := DefaultSpeedTolerancePct
	if in.SpeedTolerancePct != nil {
		tolerancePct = *in.SpeedTolerancePct
	}
	// Bounds divide last so a candidate sitting exactly on the window edge
	// survives: 100*(1+15.0/100) rounds to 114.99999999999999 in float64
	// and would exclude an exact-edge 115 rpm unit.
	rpmLow := in.RequiredOutputRPM * (100 - tolerancePct) / 100
	rpmHigh := in.RequiredOutputRPM * (100 + tolerancePct) / 100

	survivors := make([]catalog.GearmotorCandidate, 0, len(pool))
	for _, c := range pool {
		// Normalize the vendor's rating convention into a capacity directly
		// comparable to the designer's chosen margin. A higher catalog SF
		// (vendor rated conservatively) yields more usable capacity; a
		// higher chosen SF shrinks it. Chosen factors below 1.0 pass
		// through unmodified.
		c.AdjustedCapacity = c.OutputTorque * (c.ServiceFactorCatalog / in.ChosenServiceFactor)
		if c.AdjustedCapacity < in.RequiredOutputTorque {
			continue
		}

		// Speed window is inclusive on both ends.
		if c.OutputRPM < rpmLow || c.OutputRPM > rpmHigh {
			continue
		}

		c.OversizeRatio = c.AdjustedCapacity / in.RequiredOutputTorque
		c.SpeedDelta = math.Abs(c.OutputRPM - in.RequiredOutputRPM)
		c.SpeedDeltaPct = c.SpeedDelta / in.RequiredOutputRPM * 100
		survivors = append(survivors, c)
	}

	// Ranking, ascending: smallest oversize ratio first (minimize
	// over-spec), ties within epsilon broken by closest speed match, then
	// by smallest motor HP. The stable sort preserves input order for
	// candidates tied on all three keys.
	sort.SliceStable(survivors, func(i, j int) bool {
		a, b := survivors[i], survivors[j]
		if math.Abs(a.OversizeRatio-b.OversizeRatio) > oversizeRatioEpsilon {
			return a.OversizeRatio < b.OversizeRatio
		}
		if math.Abs(a.SpeedDelta-b.SpeedDelta) > speedDeltaEpsilon {
			return a.SpeedDelta < b.SpeedDelta
		}
		return a.MotorHP < b.MotorHP
	})

	return survivors
}

// poolSeries returns the series label of a candidate pool. Pools are
// single-series by construction; an empty pool has no series.
func poolSeries(pool []catalog.GearmotorCandidate) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[0].Series
}

// vendorSizePrefix is the canonical display prefix for integer size codes.
const vendorSizePrefix = "GM"

var sizeCodePattern = regexp.MustCompile(`(?i)` + vendorSizePrefix + `\d{2,4}`)

// CanonicalSeriesCode derives the display/grouping code for a candidate.
//
// If the size code parses as an integer, the canonical code is that integer
// with the fixed vendor-size prefix. Otherwise a prefixed pattern is
// extracted from the part number if one appears there. Failing both, the
// raw size code is returned unchanged.
func CanonicalSeriesCode(c catalog.GearmotorCandidate) string {
	if n, err := strconv.Atoi(strings.TrimSpace(c.SizeCode)); err == nil {
		return vendorSizePrefix + strconv.Itoa(n)
	}
	if match := sizeCodePattern.FindString(c.PartNumber); match != "" {
		return strings.ToUpper(match)
	}
	return c.SizeCode
}
