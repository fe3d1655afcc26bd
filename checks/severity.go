package checks

import "github.com/mackerelio/checkers"

// Severity is a Nagios service state. Its numeric value is the plugin exit code.
type Severity checkers.Status

const (
	OK       = Severity(checkers.OK)
	Warning  = Severity(checkers.WARNING)
	Critical = Severity(checkers.CRITICAL)
	Unknown  = Severity(checkers.UNKNOWN)
)

// Status returns s as a checkers status. Values outside the four Nagios
// states are UNKNOWN.
func (s Severity) Status() checkers.Status {

	if s < OK || s > Unknown {

		return checkers.UNKNOWN
	}

	return checkers.Status(s)
}

func (s Severity) String() string {

	return s.Status().String()
}

// ExitCode maps s to a process exit code.
func (s Severity) ExitCode() int {

	return int(s.Status())
}

// rank orders severities for aggregation: CRITICAL > UNKNOWN > WARNING > OK.
func (s Severity) rank() int {

	switch s.Status() {
	case checkers.OK:
		return 0
	case checkers.WARNING:
		return 1
	case checkers.UNKNOWN:
		return 2
	}

	return 3
}

// Worst returns the most severe of the given states, OK when none are given.
func Worst(states ...Severity) Severity {

	worst := OK

	for _, s := range states {

		if s.rank() > worst.rank() {

			worst = Severity(s.Status())
		}
	}

	return worst
}
