package handler

import (
	"check_isam/checks"
	"time"
)

// Report is the JSON document forwarded to a collector after every check run.
type Report struct {
	Check     string     `json:"check"`
	Host      string     `json:"host"`
	State     string     `json:"state"`
	ExitCode  int        `json:"exit_code"`
	Output    string     `json:"output"`
	Perfdata  []Perfdata `json:"perfdata"`
	Timestamp int64      `json:"timestamp"`
}

type Perfdata struct {
	Label string `json:"label"`
	Value string `json:"value"`
	UOM   string `json:"uom,omitempty"`
	Warn  string `json:"warn,omitempty"`
	Crit  string `json:"crit,omitempty"`
	Min   string `json:"min,omitempty"`
	Max   string `json:"max,omitempty"`
}

// NewReport builds the report of one run of check against host.
func NewReport(check, host string, res *checks.Result, now time.Time) Report {

	perfdata := make([]Perfdata, 0, len(res.Metrics))

	for _, m := range res.Metrics {

		perfdata = append(perfdata, Perfdata{
			Label: m.Label,
			Value: m.FormatValue(),
			UOM:   m.UOM,
			Warn:  m.Warn,
			Crit:  m.Crit,
			Min:   m.Min,
			Max:   m.Max,
		})
	}

	return Report{
		Check:     check,
		Host:      host,
		State:     res.Severity.String(),
		ExitCode:  res.Severity.ExitCode(),
		Output:    res.Output,
		Perfdata:  perfdata,
		Timestamp: now.Unix(),
	}
}
