package checks

import (
	"check_isam/config"
	"check_isam/snmp"
	"context"
	"fmt"
	"strconv"
	"strings"
)

func init() {

	Register(&PonUtilization{})
}

// ponsPerLT is the number of PON ports on every line-termination board.
const ponsPerLT = 16

// PonUtilization checks rx and tx utilization of all PON interfaces against
// the warning and critical percentages given on the command line.
type PonUtilization struct{}

// Name returns the command-line selector of the check.
func (c *PonUtilization) Name() string {

	return "pon_utilization"
}

// Description is the help text of the selector flag.
func (c *PonUtilization) Description() string {

	return "checks the utilization of all PON interfaces"
}

// Usage lists the flags the check accepts.
func (c *PonUtilization) Usage() string {

	return "-s <host> -c <community> -W <warning (1-99)> -C <critical (2-100)> -v [verbose]"
}

// Validate requires host, community and a warning threshold below the critical one.
func (c *PonUtilization) Validate(p Params) error {

	if err := requireTarget(p); err != nil {

		return err
	}

	if p.Warning == nil || p.Critical == nil {

		return fmt.Errorf("%w: warning and critical are required", ErrInvalidArgs)
	}

	warn, crit := *p.Warning, *p.Critical

	if warn < 1 || warn > 99 || crit < 2 || crit > 100 || warn >= crit {

		return fmt.Errorf("%w: need 1 <= warning(%d) <= 99, 2 <= critical(%d) <= 100 and warning < critical", ErrThresholds, warn, crit)
	}

	return nil
}

// Run walks the PON rx/tx utilization columns and grades each port against the thresholds.
func (c *PonUtilization) Run(ctx context.Context, env *Env, p Params) (*Result, error) {

	if err := c.Validate(p); err != nil {

		return nil, err
	}

	warn, crit := *p.Warning, *p.Critical

	columns, err := walkColumns(ctx, env, config.OIDPonRxUtilization, config.OIDPonTxUtilization)

	if err != nil {

		return nil, err
	}

	env.debugVars("rx utilization", columns[0])

	env.debugVars("tx utilization", columns[1])

	rx, err := percentages(columns[0])

	if err != nil {

		return nil, err
	}

	tx, err := percentages(columns[1])

	if err != nil {

		return nil, err
	}

	env.debugf("\nConverted rx values:\n%v\nConverted tx values:\n%v\n", rx, tx)

	var warnings, criticals int

	for i := range rx {

		switch classifyUtilization(rx[i], tx[i], warn, crit) {
		case Critical:
			criticals++
		case Warning:
			warnings++
		}
	}

	var out strings.Builder

	severity := OK

	switch {
	case criticals > 0:
		severity = Critical

		fmt.Fprintf(&out, "%d/%d PON interfaces are reporting CRITICAL\n", criticals, len(rx))
	case warnings > 0:
		severity = Warning

		fmt.Fprintf(&out, "%d/%d PON interfaces are reporting WARNING\n", warnings, len(rx))
	default:
		fmt.Fprintf(&out, "%d/%d PON interfaces are reporting OK\n", len(rx), len(rx))
	}

	out.WriteString("|\n")

	metrics := make([]Metric, 0, 2*len(rx))

	for i := range rx {

		port := ponPort(i)

		for _, m := range []Metric{
			utilizationMetric(port+"_rx", rx[i], warn, crit),
			utilizationMetric(port+"_tx", tx[i], warn, crit),
		} {
			fmt.Fprintf(&out, "%s\n", m)

			metrics = append(metrics, m)
		}
	}

	return &Result{
		Severity: severity,
		Output:   out.String(),
		Metrics:  metrics,
	}, nil
}

// classifyUtilization is CRITICAL when either direction reaches crit, else
// WARNING when either reaches warn.
func classifyUtilization(rx, tx float64, warn, crit int) Severity {

	switch {
	case rx >= float64(crit) || tx >= float64(crit):
		return Critical
	case rx >= float64(warn) || tx >= float64(warn):
		return Warning
	}

	return OK
}

// ponPort names the i-th walked port. The agent does not return the port
// position, so it is derived assuming 16 PONs per LT: pon_1/1/<lt>/<pon>.
func ponPort(i int) string {

	return fmt.Sprintf("pon_1/1/%d/%d", i/ponsPerLT+1, i%ponsPerLT+1)
}

func utilizationMetric(label string, value float64, warn, crit int) Metric {

	return Metric{
		Label:     label,
		Value:     value,
		Precision: 2,
		UOM:       "%",
		Warn:      strconv.Itoa(warn),
		Crit:      strconv.Itoa(crit),
		Min:       "0",
		Max:       "100",
	}
}

// percentages converts raw utilization values, reported as percent * 100.
func percentages(vars []snmp.Variable) ([]float64, error) {

	values := make([]float64, len(vars))

	for i, v := range vars {

		f, err := v.Float()

		if err != nil {

			return nil, err
		}

		values[i] = f / 100
	}

	return values, nil
}
