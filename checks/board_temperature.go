package checks

import (
	"check_isam/config"
	"context"
	"fmt"
	"strings"
)

func init() {

	Register(&BoardTemperature{})
}

// BoardTemperature checks the temperature sensors on all boards.
//
// The high-temperature ceilings come from the device per sensor: tca-low
// raises the warning, shut-low the critical. The low-temperature floors are
// the same for every sensor and come from the configuration.
type BoardTemperature struct{}

// Name returns the command-line selector of the check.
func (c *BoardTemperature) Name() string {

	return "board_temperature"
}

// Description is the help text of the selector flag.
func (c *BoardTemperature) Description() string {

	return "checks the temperature sensors on all boards"
}

// Usage lists the flags the check accepts.
func (c *BoardTemperature) Usage() string {

	return "-s <host> -c <community> -v [verbose]"
}

// Validate requires host and community.
func (c *BoardTemperature) Validate(p Params) error {

	return requireTarget(p)
}

// Run walks the sensor readings and their thresholds and reports every sensor.
func (c *BoardTemperature) Run(ctx context.Context, env *Env, _ Params) (*Result, error) {

	columns, err := walkColumns(ctx, env,
		config.OIDTemperatureActual,
		config.OIDTemperatureTcaLow,
		config.OIDTemperatureShutLow,
	)

	if err != nil {

		return nil, err
	}

	sensors := columns[0]

	env.debugVars("actual temperature", columns[0])

	env.debugVars("tca low", columns[1])

	env.debugVars("shut low", columns[2])

	actual, err := ints(columns[0])

	if err != nil {

		return nil, err
	}

	tcaLow, err := ints(columns[1])

	if err != nil {

		return nil, err
	}

	shutLow, err := ints(columns[2])

	if err != nil {

		return nil, err
	}

	floors := env.Temperature

	var warnings, criticals int

	for i := range actual {

		switch classifyTemperature(actual[i], tcaLow[i], shutLow[i], floors) {
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

		fmt.Fprintf(&out, "%d/%d temperature sensors are reporting CRITICAL\n", criticals, len(actual))
	case warnings > 0:
		severity = Warning

		fmt.Fprintf(&out, "%d/%d temperature sensors are reporting WARNING\n", warnings, len(actual))
	default:
		fmt.Fprintf(&out, "%d/%d temperature sensors are reporting OK\n", len(actual), len(actual))
	}

	out.WriteString(" |\n")

	metrics := make([]Metric, 0, len(actual))

	// listed bottom-up so the output follows the board position in the chassis
	for i := len(actual) - 1; i >= 0; i-- {

		slot, err := sensors[i].Index(2)

		if err != nil {

			return nil, err
		}

		sensor, err := sensors[i].Index(1)

		if err != nil {

			return nil, err
		}

		m := Metric{
			Label: fmt.Sprintf("%s.%d", env.Slots.Label(slot), sensor),
			Value: float64(actual[i]),
			UOM:   "°C",
			Warn:  fmt.Sprintf("%d:%d", floors.ColdWarning, tcaLow[i]),
			Crit:  fmt.Sprintf("%d:%d", floors.ColdCritical, shutLow[i]),
		}

		fmt.Fprintf(&out, "%s\n", m)

		metrics = append(metrics, m)
	}

	return &Result{
		Severity: severity,
		Output:   out.String(),
		Metrics:  metrics,
	}, nil
}

// classifyTemperature is CRITICAL outside [coldCritical, shutLow) and WARNING
// outside [coldWarning, tcaLow). A ceiling at or below its floor makes the
// range empty, so every reading falls outside of it.
func classifyTemperature(actual, tcaLow, shutLow int, floors config.Temperature) Severity {

	switch {
	case !inRange(actual, floors.ColdCritical, shutLow):
		return Critical
	case !inRange(actual, floors.ColdWarning, tcaLow):
		return Warning
	}

	return OK
}

// inRange tests lo <= v < hi.
func inRange(v, lo, hi int) bool {

	return v >= lo && v < hi
}
