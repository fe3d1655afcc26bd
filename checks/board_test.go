package checks

import (
	"bytes"
	"check_isam/config"
	"check_isam/snmp"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardSNMP(statusOID string, slots []int, types []string, codes ...int) *fakeSNMP {
	suffixes := slotSuffixes(slots...)
	return &fakeSNMP{
		walks: map[string][]snmp.Variable{
			statusOID:                 intColumn(statusOID, suffixes, codes...),
			config.OIDBoardActualType: column(config.OIDBoardActualType, suffixes, types...),
		},
	}
}

var (
	testSlots = []int{4353, 4354, 4355, 4481}
	testTypes = []string{"FANT-F", "FANT-F", "FGLT-B", "EMPTY"}
)

func TestClassifyAvailability(t *testing.T) {
	want := map[int]Severity{0: Unknown, 1: OK, 2: Warning, 3: Critical, 4: Critical, 5: OK, 6: Critical, 7: Critical}
	for code := range availabilityStatus {
		assert.Equalf(t, want[code], classifyAvailability(code), "code %d", code)
	}
	assert.Equal(t, Unknown, classifyAvailability(8), "unmapped code")
	assert.Equal(t, Unknown, classifyAvailability(-1), "unmapped code")
}

func TestClassifyOperational(t *testing.T) {
	for code := range operationalStatus {
		sev := classifyOperational(code)
		switch code {
		case 0:
			assert.Equal(t, Unknown, sev)
		case 1:
			assert.Equal(t, OK, sev)
		case 5, 6, 16, 19:
			assert.Equalf(t, Warning, sev, "code %d", code)
		default:
			assert.Equalf(t, Critical, sev, "code %d", code)
		}
	}
	assert.Equal(t, Unknown, classifyOperational(21), "unmapped code")
	assert.Equal(t, Unknown, classifyOperational(254), "unmapped code")
}

func TestBoardAvailabilityOutput(t *testing.T) {
	q := boardSNMP(config.OIDBoardAvailabilityStatus, testSlots, testTypes, 1, 2, 1, 0)

	res, err := (&BoardAvailability{}).Run(context.Background(), testEnv(q), Params{})
	require.NoError(t, err)
	assert.Equal(t, Warning, res.Severity)
	assert.Equal(t, "ISAM Board Availability-Status is WARNING | availability=1;1;2;0;3\n"+
		"\n"+
		"lt:1/1/1   : FGLT-B : available\n"+
		"nt-b       : FANT-F : selftest in progress\n"+
		"nt-a       : FANT-F : available\n",
		res.Output)
	assert.Equal(t, []Metric{stateMetric("availability", Warning)}, res.Metrics)
}

func TestBoardAvailabilitySentinelIgnored(t *testing.T) {
	q := boardSNMP(config.OIDBoardAvailabilityStatus, testSlots, testTypes, 1, 1, 1, 3)

	res, err := (&BoardAvailability{}).Run(context.Background(), testEnv(q), Params{})
	require.NoError(t, err)
	assert.Equal(t, OK, res.Severity, "failed sentinel row does not count")
	assert.NotContains(t, res.Output, "EMPTY", "sentinel row is not listed")
}

func TestBoardAvailabilityWorst(t *testing.T) {
	tests := []struct {
		name  string
		codes []int
		want  Severity
	}{
		{"critical beats unknown", []int{0, 3, 2, 1}, Critical},
		{"unknown beats warning", []int{0, 2, 1, 1}, Unknown},
		{"unmapped code", []int{1, 9, 1, 1}, Unknown},
		{"not installed is ok", []int{5, 1, 1, 1}, OK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := boardSNMP(config.OIDBoardAvailabilityStatus, testSlots, testTypes, tt.codes...)
			res, err := (&BoardAvailability{}).Run(context.Background(), testEnv(q), Params{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Severity)
		})
	}
}

func TestBoardOperStatusOutput(t *testing.T) {
	q := boardSNMP(config.OIDBoardOperationalStatus, testSlots, testTypes, 1, 14, 1, 0)

	res, err := (&BoardOperStatus{}).Run(context.Background(), testEnv(q), Params{})
	require.NoError(t, err)
	assert.Equal(t, Critical, res.Severity)
	assert.Equal(t, "ISAM Board Operational-Status is CRITICAL | operational_state=2;1;2;0;3\n"+
		"\n"+
		"lt:1/1/1   : FGLT-B : no-error\n"+
		"nt-b       : FANT-F : temperature-shutdown\n"+
		"nt-a       : FANT-F : no-error\n",
		res.Output)
}

func TestBoardUnmappedSlot(t *testing.T) {
	q := boardSNMP(config.OIDBoardOperationalStatus, []int{9999, 4481}, []string{"NGLT-C", "EMPTY"}, 1, 0)

	res, err := (&BoardOperStatus{}).Run(context.Background(), testEnv(q), Params{})
	require.NoError(t, err)
	assert.Contains(t, res.Output, "slot-9999  : NGLT-C : no-error\n")
}

func TestBoardSNMPFailures(t *testing.T) {
	t.Run("empty walk", func(t *testing.T) {
		q := &fakeSNMP{}
		_, err := (&BoardAvailability{}).Run(context.Background(), testEnv(q), Params{})
		assert.ErrorIs(t, err, ErrSNMP)
	})

	t.Run("length mismatch", func(t *testing.T) {
		q := boardSNMP(config.OIDBoardAvailabilityStatus, testSlots, testTypes, 1, 1, 1, 0)
		q.walks[config.OIDBoardActualType] = q.walks[config.OIDBoardActualType][:2]
		_, err := (&BoardAvailability{}).Run(context.Background(), testEnv(q), Params{})
		assert.ErrorIs(t, err, ErrSNMP)
	})

	t.Run("row without value", func(t *testing.T) {
		q := &fakeSNMP{err: fmt.Errorf("snmp walk %s: %s.4354: %w", config.OIDBoardAvailabilityStatus, config.OIDBoardAvailabilityStatus, snmp.ErrNoData)}
		_, err := (&BoardAvailability{}).Run(context.Background(), testEnv(q), Params{})
		assert.ErrorIs(t, err, ErrSNMP)
	})

	t.Run("transport error", func(t *testing.T) {
		q := &fakeSNMP{err: errors.New("request timeout (after 0 retries)")}
		_, err := (&BoardAvailability{}).Run(context.Background(), testEnv(q), Params{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSNMP)
	})

	t.Run("non numeric status", func(t *testing.T) {
		q := boardSNMP(config.OIDBoardAvailabilityStatus, testSlots, testTypes, 1, 1, 1, 0)
		q.walks[config.OIDBoardAvailabilityStatus][0].Value = "available"
		_, err := (&BoardAvailability{}).Run(context.Background(), testEnv(q), Params{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSNMP)
	})
}

func TestBoardVerbose(t *testing.T) {
	q := boardSNMP(config.OIDBoardAvailabilityStatus, testSlots, testTypes, 1, 1, 1, 0)
	env := testEnv(q)
	var verbose bytes.Buffer
	env.Verbose = &verbose

	res, err := (&BoardAvailability{}).Run(context.Background(), env, Params{})
	require.NoError(t, err)
	assert.Equal(t, OK, res.Severity)
	assert.Contains(t, verbose.String(), "\nSNMP - board availability status:\n")
	assert.Contains(t, verbose.String(), "board_type: FGLT-B - availability: available\n")
	assert.NotContains(t, res.Output, "SNMP -", "verbose output stays out of the result")
}
