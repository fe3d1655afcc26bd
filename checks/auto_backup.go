package checks

import (
	"check_isam/config"
	"context"
	"fmt"
	"strings"
)

func init() {

	Register(&AutoBackupStatus{})
}

const (
	progressOngoing = 1
	progressSuccess = 2
	backupNoError   = 10
)

var backupProgress = Table{
	0: "unknown",
	1: "ongoing",
	2: "finished and successfull",
	3: "finished but failed",
}

var backupDownloadError = Table{
	0:  "unknown",
	1:  "file not found",
	2:  "access violation",
	3:  "disk full - allocation needed",
	4:  "illegal tftp-operation",
	5:  "unknown transfer-id",
	6:  "file already exists",
	7:  "no such user",
	8:  "corrupted database - incomplete database",
	9:  "system restart",
	10: "no error",
	11: "corrupted iss-config",
	12: "corrupted iss-prot-config",
}

var backupUploadError = Table{
	0:  "unknown",
	1:  "file not found",
	2:  "access violation",
	3:  "disk full - allocation needed",
	4:  "illegal tftp-operation",
	5:  "unknown transfer-id",
	6:  "file already exists",
	7:  "no such user",
	8:  "selected database not available",
	9:  "system restart",
	10: "no error",
	11: "another SWDB process is ongoing",
}

// AutoBackupStatus checks the status of the auto-backup of the configuration database.
type AutoBackupStatus struct{}

// Name returns the command-line selector of the check.
func (c *AutoBackupStatus) Name() string {

	return "auto_backup_status"
}

// Description is the help text of the selector flag.
func (c *AutoBackupStatus) Description() string {

	return "checks the status of the auto-backup feature"
}

// Usage lists the flags the check accepts.
func (c *AutoBackupStatus) Usage() string {

	return "-s <host> -c <community> -v [verbose]"
}

// Validate requires host and community.
func (c *AutoBackupStatus) Validate(p Params) error {

	return requireTarget(p)
}

// backupState is the last transfer in each direction.
type backupState struct {
	DownloadProgress int
	UploadProgress   int
	DownloadError    int
	UploadError      int
}

// Run reads the backup progress and error scalars and classifies them.
func (c *AutoBackupStatus) Run(ctx context.Context, env *Env, _ Params) (*Result, error) {

	codes, vars, err := getInts(ctx, env,
		config.OIDBackupDownloadProgress,
		config.OIDBackupUploadProgress,
		config.OIDBackupDownloadError,
		config.OIDBackupUploadError,
	)

	if err != nil {

		return nil, err
	}

	env.debugf("\nSNMP - download progress: %s\n", vars[0])

	env.debugf("SNMP - upload progress: %s\n", vars[1])

	env.debugf("SNMP - download error: %s\n", vars[2])

	env.debugf("SNMP - upload error: %s\n", vars[3])

	state := backupState{
		DownloadProgress: codes[0],
		UploadProgress:   codes[1],
		DownloadError:    codes[2],
		UploadError:      codes[3],
	}

	severity := classifyBackup(state)

	metric := stateMetric("backup_status", severity)

	var out strings.Builder

	fmt.Fprintf(&out, "ISAM Auto-Backup is %s\n", severity)

	fmt.Fprintf(&out, "DB Download: %s => %s\n", backupProgress.Label(state.DownloadProgress), backupDownloadError.Label(state.DownloadError))

	fmt.Fprintf(&out, "DB Upload: %s => %s\n", backupProgress.Label(state.UploadProgress), backupUploadError.Label(state.UploadError))

	fmt.Fprintf(&out, "| %s\n", metric)

	return &Result{
		Severity: severity,
		Output:   out.String(),
		Metrics:  []Metric{metric},
	}, nil
}

// classifyBackup applies the first matching rule: both transfers finished
// without error, any value unknown, any transfer still running, otherwise failed.
func classifyBackup(s backupState) Severity {

	switch {
	case s.DownloadProgress == progressSuccess && s.UploadProgress == progressSuccess &&
		s.DownloadError == backupNoError && s.UploadError == backupNoError:

		return OK
	case s.unknown():
		return Unknown
	case s.DownloadProgress == progressOngoing || s.UploadProgress == progressOngoing:
		return Warning
	}

	return Critical
}

func (s backupState) unknown() bool {

	for _, v := range []struct {
		code  int
		table Table
	}{
		{s.DownloadProgress, backupProgress},
		{s.UploadProgress, backupProgress},
		{s.DownloadError, backupDownloadError},
		{s.UploadError, backupUploadError},
	} {
		if v.code == 0 || !v.table.Has(v.code) {

			return true
		}
	}

	return false
}
