package engine

import (
	"fmt"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// Issue codes are a stable, enumerable contract. Downstream UI and tests
// key off these values; renaming one is a compatibility break.
const (
	// IssueInternalBearingsTailOnly fires when an INTERNAL_BEARINGS pulley
	// is evaluated at any station other than tail.
	IssueInternalBearingsTailOnly = "INTERNAL_BEARINGS_TAIL_ONLY"

	// IssueStationNotAllowed fires when the pulley's stored eligibility
	// flag for the requested station is false.
	IssueStationNotAllowed = "STATION_NOT_ALLOWED"

	// IssueFaceWidthBelowMin fires when the required face width is below
	// the pulley's minimum.
	IssueFaceWidthBelowMin = "FACE_WIDTH_BELOW_MIN"

	// IssueFaceWidthExceeded fires when the required face width exceeds
	// the pulley's maximum.
	IssueFaceWidthExceeded = "FACE_WIDTH_EXCEEDED"

	// IssueDiameterTooSmall fires when the effective (lagging-adjusted)
	// diameter is below the required minimum.
	IssueDiameterTooSmall = "DIAMETER_TOO_SMALL"

	// IssueSpeedLimitExceeded fires when the belt speed exceeds the
	// pulley's published maximum. Warning severity: the speed limit is
	// advisory per the governing design-practice standard, not a hard stop.
	IssueSpeedLimitExceeded = "SPEED_LIMIT_EXCEEDED"
)

func errorIssue(code, format string, args ...any) catalog.Issue {
	return catalog.Issue{Code: code, Severity: catalog.SeverityError, Message: fmt.Sprintf(format, args...)}
}

func warningIssue(code, format string, args ...any) catalog.Issue {
	return catalog.Issue{Code: code, Severity: catalog.SeverityWarning, Message: fmt.Sprintf(format, args...)}
}
