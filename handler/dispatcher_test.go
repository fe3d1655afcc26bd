package handler

import (
	"bytes"
	"check_isam/config"
	"check_isam/snmp"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	walks  map[string][]snmp.Variable
	panics bool
	closed bool
}

func (s *fakeSession) Get(_ context.Context, oid string) (snmp.Variable, error) {
	return snmp.Variable{}, fmt.Errorf("get %s: %w", oid, snmp.ErrNoData)
}

func (s *fakeSession) Walk(_ context.Context, oid string) ([]snmp.Variable, error) {
	if s.panics {
		panic("index out of range")
	}
	return s.walks[oid], nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

// boardSession answers the availability walk for NT-A, NT-B and the trailing sentinel row.
func boardSession(codes ...string) *fakeSession {
	slots := []string{"4353", "4354", "4481"}
	types := []string{"FANT-F", "FANT-F", "EMPTY"}
	s := &fakeSession{walks: map[string][]snmp.Variable{}}
	for i, code := range codes {
		s.walks[config.OIDBoardAvailabilityStatus] = append(s.walks[config.OIDBoardAvailabilityStatus],
			snmp.Variable{OID: config.OIDBoardAvailabilityStatus + "." + slots[i], Value: code})
		s.walks[config.OIDBoardActualType] = append(s.walks[config.OIDBoardActualType],
			snmp.Variable{OID: config.OIDBoardActualType + "." + slots[i], Value: types[i]})
	}
	return s
}

type harness struct {
	out     bytes.Buffer
	session *fakeSession
	dialErr error
	dials   int
}

func (h *harness) dial(_ config.SNMP, _, _ string, _ *logrus.Logger) (Session, error) {
	h.dials++
	if h.dialErr != nil {
		return nil, h.dialErr
	}
	return h.session, nil
}

func (h *harness) run(args ...string) int {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	return NewDispatcher(&h.out, h.dial, log).Execute(context.Background(), args)
}

func TestNoCheckSelected(t *testing.T) {
	h := &harness{}

	assert.Equal(t, 3, h.run())
	assert.Contains(t, h.out.String(), "Collection of Nokia ISAM Monitoring Plugins")
	assert.Zero(t, h.dials)
}

func TestVersion(t *testing.T) {
	h := &harness{}

	assert.Equal(t, 0, h.run("--version"))
	assert.Equal(t, "check_isam 1.3\n", h.out.String())
}

func TestHelpListsEveryCheck(t *testing.T) {
	h := &harness{}

	h.run("--help")
	for _, name := range checkOrder {
		assert.Contains(t, h.out.String(), "--"+name)
	}
	assert.Contains(t, h.out.String(), "-W <warning (1-99)> -C <critical (2-100)>")
	assert.Zero(t, h.dials)
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing host", []string{"--board_availability", "-c", "public"}, msgInvalidArgs},
		{"missing community", []string{"--board_temperature", "-s", "isam"}, msgInvalidArgs},
		{"missing thresholds", []string{"--pon_utilization", "-s", "isam", "-c", "public", "-W", "80"}, msgInvalidArgs},
		{"warning out of range", []string{"--pon_utilization", "-s", "isam", "-c", "public", "-W", "100", "-C", "95"}, msgThresholds},
		{"warning above critical", []string{"--pon_utilization", "-s", "isam", "-c", "public", "-W", "90", "-C", "80"}, msgThresholds},
		{"missing group", []string{"--nt_redundancy", "-s", "isam", "-c", "public"}, msgInvalidArgs},
		{"group out of range", []string{"--nt_redundancy", "-s", "isam", "-c", "public", "-g", "6"}, msgThresholds},
		{"two checks", []string{"--board_availability", "--board_oper_status", "-s", "isam", "-c", "public"}, msgInvalidArgs},
		{"non numeric threshold", []string{"--pon_utilization", "-s", "isam", "-c", "public", "-W", "high", "-C", "95"}, msgInvalidArgs},
		{"unknown flag", []string{"--board_availability", "--bogus"}, msgInvalidArgs},
		{"positional argument", []string{"--board_availability", "-s", "isam", "-c", "public", "extra"}, msgInvalidArgs},
		{"missing config file", []string{"--board_availability", "-s", "isam", "-c", "public", "--config", "/nonexistent/check_isam.yaml"}, msgInvalidArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &harness{}

			assert.Equal(t, 3, h.run(tt.args...))
			assert.Equal(t, tt.want+"\n", h.out.String())
			assert.Zero(t, h.dials, "device is not contacted")
		})
	}
}

func TestRunPropagatesSeverity(t *testing.T) {
	tests := []struct {
		codes []string
		want  int
		first string
	}{
		{[]string{"1", "1", "0"}, 0, "ISAM Board Availability-Status is OK"},
		{[]string{"1", "2", "0"}, 1, "ISAM Board Availability-Status is WARNING"},
		{[]string{"3", "1", "0"}, 2, "ISAM Board Availability-Status is CRITICAL"},
		{[]string{"0", "1", "1"}, 3, "ISAM Board Availability-Status is UNKNOWN"},
	}
	for _, tt := range tests {
		h := &harness{session: boardSession(tt.codes...)}

		assert.Equal(t, tt.want, h.run("--board_availability", "-s", "isam", "-c", "public"))
		assert.Contains(t, h.out.String(), tt.first)
		assert.True(t, h.session.closed)
	}
}

func TestRunSNMPError(t *testing.T) {
	h := &harness{session: &fakeSession{}}

	assert.Equal(t, 3, h.run("--board_availability", "-s", "isam", "-c", "public"))
	assert.Equal(t, msgSNMPError+"\n", h.out.String())
}

func TestRunMissingScalar(t *testing.T) {
	h := &harness{session: &fakeSession{}}

	assert.Equal(t, 3, h.run("--auto_backup_status", "-s", "isam", "-c", "public"))
	assert.Equal(t, msgSNMPError+"\n", h.out.String())
}

func TestRunTransportError(t *testing.T) {
	h := &harness{dialErr: errors.New("error connecting to SNMP target isam: no route to host")}

	assert.Equal(t, 3, h.run("--board_availability", "-s", "isam", "-c", "public"))
	assert.Equal(t, msgError+"\nerror connecting to SNMP target isam: no route to host\n", h.out.String())
}

func TestRunRecoversPanic(t *testing.T) {
	h := &harness{session: &fakeSession{panics: true}}

	assert.Equal(t, 3, h.run("--board_availability", "-s", "isam", "-c", "public"))
	assert.Equal(t, msgError+"\nboard_availability: index out of range\n", h.out.String())
	assert.True(t, h.session.closed)
}

func TestRunVerbose(t *testing.T) {
	h := &harness{session: boardSession("1", "1", "0")}

	assert.Equal(t, 0, h.run("--board_availability", "-s", "isam", "-c", "public", "-v"))
	assert.Contains(t, h.out.String(), "\nSNMP - board availability status:\n")
	assert.Contains(t, h.out.String(), "board_type: FANT-F - availability: available\n")
}

func TestRunWritesTextfile(t *testing.T) {
	dir := t.TempDir()
	promFile := filepath.Join(dir, "isam.prom")
	cfgFile := filepath.Join(dir, "check_isam.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("textfile:\n  path: "+promFile+"\n"), 0o600))

	h := &harness{session: boardSession("1", "2", "0")}

	assert.Equal(t, 1, h.run("--board_availability", "-s", "isam", "-c", "public", "--config", cfgFile))

	data, err := os.ReadFile(promFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `isam_check_state{check="board_availability",host="isam"} 1`)
}

func TestRunTextfileFailureKeepsVerdict(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "check_isam.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("textfile:\n  path: "+filepath.Join(dir, "missing", "isam.prom")+"\n"), 0o600))

	h := &harness{session: boardSession("1", "1", "0")}

	assert.Equal(t, 0, h.run("--board_availability", "-s", "isam", "-c", "public", "--config", cfgFile))
	assert.Contains(t, h.out.String(), "ISAM Board Availability-Status is OK")
}

func TestUsageMatchesRegistry(t *testing.T) {
	u := usage()
	assert.Contains(t, u, "check_isam --board_availability -s <host> -c <community> -v [verbose]\n")
	assert.Contains(t, u, "check_isam --nt_redundancy        -s <host> -c <community> -g <groupId (1-5)> -v [verbose]\n")
}

func TestRunWritesInflux(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfgFile := filepath.Join(t.TempDir(), "check_isam.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("influx:\n  url: "+srv.URL+"\n"), 0o600))

	h := &harness{session: boardSession("3", "1", "0")}

	assert.Equal(t, 2, h.run("--board_availability", "-s", "isam", "-c", "public", "--config", cfgFile))
	assert.Contains(t, body, "isam_check_state,check=board_availability,host=isam,state=CRITICAL value=2")
	assert.Contains(t, body, "isam_check_perfdata,check=board_availability,host=isam,label=availability value=2")
}
