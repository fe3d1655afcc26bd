package checks

import (
	"check_isam/config"
	"context"
)

func init() {

	Register(&BoardOperStatus{})
}

var operationalStatus = Table{
	0:   "unknown",
	1:   "no-error",
	2:   "type-mismatch",
	3:   "board-missing",
	4:   "board-installation-missing",
	5:   "no-planned-board",
	6:   "waiting-for-sw",
	7:   "init-boot-failed",
	8:   "init-download-failed",
	9:   "init-connection-failed",
	10:  "init-configuration-failed",
	11:  "board-reset-protection",
	12:  "invalid-parameter",
	13:  "temperature-alarm",
	14:  "temperature-shutdown",
	15:  "defense",
	16:  "board-not-licensed",
	17:  "sem-power-fail",
	18:  "sem-ups-fail",
	19:  "board-in-incompatible-slot",
	20:  "download-ongoing",
	255: "unknown-error",
}

var (
	operationalWarning  = codeSet(5, 6, 16, 19)
	operationalCritical = codeSet(2, 3, 4, 7, 8, 9, 10, 11, 12, 13, 14, 15, 17, 18, 20, 255)
)

// BoardOperStatus checks the operational status of all boards.
type BoardOperStatus struct{}

// Name returns the command-line selector of the check.
func (c *BoardOperStatus) Name() string {

	return "board_oper_status"
}

// Description is the help text of the selector flag.
func (c *BoardOperStatus) Description() string {

	return "checks the operational status of all boards"
}

// Usage lists the flags the check accepts.
func (c *BoardOperStatus) Usage() string {

	return "-s <host> -c <community> -v [verbose]"
}

// Validate requires host and community.
func (c *BoardOperStatus) Validate(p Params) error {

	return requireTarget(p)
}

// Run walks the board operational-status and type columns and reports the worst board.
func (c *BoardOperStatus) Run(ctx context.Context, env *Env, _ Params) (*Result, error) {

	b := &boardCheck{
		title:      "Operational-Status",
		caption:    "board operational status",
		statusName: "operational_status",
		metric:     "operational_state",
		oid:        config.OIDBoardOperationalStatus,
		table:      operationalStatus,
		classify:   classifyOperational,
	}

	return b.run(ctx, env)
}

func classifyOperational(code int) Severity {

	switch {
	case code == 0 || !operationalStatus.Has(code):
		return Unknown
	case operationalWarning[code]:
		return Warning
	case operationalCritical[code]:
		return Critical
	}

	return OK
}
