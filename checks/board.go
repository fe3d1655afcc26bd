package checks

import (
	"check_isam/config"
	"context"
	"fmt"
	"strings"
)

// boardCheck evaluates one status column of the equipment board table
// against the board type column.
type boardCheck struct {
	title      string // "Availability-Status"
	caption    string // verbose heading of the status column
	statusName string // per-board verbose key, e.g. "availability"
	metric     string
	oid        string
	table      Table
	classify   func(code int) Severity
}

// The last row of the board table is a placeholder slot the agent always
// reports as unknown. It takes part neither in the verdict nor in the listing.
func withoutSentinel(rows int) int {

	if rows == 0 {

		return 0
	}

	return rows - 1
}

func (b *boardCheck) run(ctx context.Context, env *Env) (*Result, error) {

	columns, err := walkColumns(ctx, env, b.oid, config.OIDBoardActualType)

	if err != nil {

		return nil, err
	}

	status, types := columns[0], columns[1]

	env.debugVars(b.caption, status)

	env.debugVars("board actual type", types)

	codes, err := ints(status)

	if err != nil {

		return nil, err
	}

	boards := withoutSentinel(len(codes))

	severity := OK

	for i := 0; i < boards; i++ {

		env.debugf("board_type: %s - %s: %s\n", types[i].Value, b.statusName, b.table.Label(codes[i]))

		severity = Worst(severity, b.classify(codes[i]))
	}

	metric := stateMetric(b.metric, severity)

	var out strings.Builder

	fmt.Fprintf(&out, "ISAM Board %s is %s | %s\n\n", b.title, severity, metric)

	// listed bottom-up so the output follows the board position in the chassis
	for i := boards - 1; i >= 0; i-- {

		slot, err := types[i].Index(1)

		if err != nil {

			return nil, err
		}

		fmt.Fprintf(&out, "%-11s: %-6s : %s\n", env.Slots.Label(slot), types[i].Value, b.table.Label(codes[i]))
	}

	return &Result{
		Severity: severity,
		Output:   out.String(),
		Metrics:  []Metric{metric},
	}, nil
}
