package checks

import (
	"check_isam/config"
	"check_isam/snmp"
	"context"
	"fmt"
	"strconv"
)

// fakeSNMP answers from canned values and counts requests.
type fakeSNMP struct {
	gets  map[string]string
	walks map[string][]snmp.Variable
	err   error
	calls int
}

func (f *fakeSNMP) Get(_ context.Context, oid string) (snmp.Variable, error) {
	f.calls++
	if f.err != nil {
		return snmp.Variable{}, f.err
	}
	v, ok := f.gets[oid]
	if !ok {
		return snmp.Variable{}, fmt.Errorf("snmp get %s: %w", oid, snmp.ErrNoData)
	}
	return snmp.Variable{OID: oid, Value: v}, nil
}

func (f *fakeSNMP) Walk(_ context.Context, oid string) ([]snmp.Variable, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.walks[oid], nil
}

// column builds a walk result with one row per index suffix.
func column(oid string, suffixes []string, values ...string) []snmp.Variable {
	vars := make([]snmp.Variable, len(values))
	for i, v := range values {
		vars[i] = snmp.Variable{OID: oid + "." + suffixes[i], Value: v}
	}
	return vars
}

func slotSuffixes(slots ...int) []string {
	s := make([]string, len(slots))
	for i, slot := range slots {
		s[i] = strconv.Itoa(slot)
	}
	return s
}

func intColumn(oid string, suffixes []string, values ...int) []snmp.Variable {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = strconv.Itoa(v)
	}
	return column(oid, suffixes, s...)
}

func testEnv(q snmp.Querier) *Env {
	cfg := config.LoadConfig()
	return &Env{
		SNMP:        q,
		Slots:       cfg.Slots,
		Temperature: cfg.Temperature,
	}
}

func intp(n int) *int { return &n }
