package checks

import (
	"check_isam/config"
	"context"
)

func init() {

	Register(&BoardAvailability{})
}

var availabilityStatus = Table{
	0: "unknown",
	1: "available",
	2: "selftest in progress",
	3: "failed",
	4: "powered off",
	5: "not installed",
	6: "offline",
	7: "dependency",
}

var availabilityCritical = codeSet(3, 4, 6, 7)

// BoardAvailability checks the availability status of all boards.
type BoardAvailability struct{}

// Name returns the command-line selector of the check.
func (c *BoardAvailability) Name() string {

	return "board_availability"
}

// Description is the help text of the selector flag.
func (c *BoardAvailability) Description() string {

	return "checks the availability status of all boards"
}

// Usage lists the flags the check accepts.
func (c *BoardAvailability) Usage() string {

	return "-s <host> -c <community> -v [verbose]"
}

// Validate requires host and community.
func (c *BoardAvailability) Validate(p Params) error {

	return requireTarget(p)
}

// Run walks the board availability and type columns and reports the worst board.
func (c *BoardAvailability) Run(ctx context.Context, env *Env, _ Params) (*Result, error) {

	b := &boardCheck{
		title:      "Availability-Status",
		caption:    "board availability status",
		statusName: "availability",
		metric:     "availability",
		oid:        config.OIDBoardAvailabilityStatus,
		table:      availabilityStatus,
		classify:   classifyAvailability,
	}

	return b.run(ctx, env)
}

func classifyAvailability(code int) Severity {

	switch {
	case code == 0 || !availabilityStatus.Has(code):
		return Unknown
	case code == 2:
		return Warning
	case availabilityCritical[code]:
		return Critical
	}

	return OK
}
