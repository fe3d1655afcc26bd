package checks

import (
	"fmt"
	"strconv"
)

// Result is the verdict of a single check run.
type Result struct {
	Severity Severity

	// Output is the complete plugin output, performance data included, as
	// printed to stdout.
	Output string

	Metrics []Metric
}

// Metric is one Nagios performance value: label=value[uom];warn;crit;min;max
type Metric struct {
	Label     string
	Value     float64
	Precision int
	UOM       string
	Warn      string
	Crit      string
	Min       string
	Max       string
}

func (m Metric) String() string {

	return fmt.Sprintf("%s=%s%s;%s;%s;%s;%s", m.Label, m.FormatValue(), m.UOM, m.Warn, m.Crit, m.Min, m.Max)
}

// FormatValue renders the value with the metric's fixed precision.
func (m Metric) FormatValue() string {

	return strconv.FormatFloat(m.Value, 'f', m.Precision, 64)
}

// stateMetric reports a severity as a number with warn=1, crit=2 and range 0..3.
func stateMetric(label string, s Severity) Metric {

	return Metric{
		Label: label,
		Value: float64(s.ExitCode()),
		Warn:  "1",
		Crit:  "2",
		Min:   "0",
		Max:   "3",
	}
}
