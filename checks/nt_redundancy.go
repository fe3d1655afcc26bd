package checks

import (
	"check_isam/config"
	"context"
	"fmt"
	"strings"
)

func init() {

	Register(&NTRedundancy{})
}

const (
	minGroupID = 1
	maxGroupID = 5

	adminUnlock      = 1
	rowActive        = 1
	providingService = 1
	hotStandby       = 2
)

var adminState = Table{
	1: "unlock",
	2: "lock",
}

var groupRowState = Table{
	1: "active",
	2: "not in service",
	3: "not ready",
	4: "create and go",
	5: "create and wait",
	6: "destroy",
}

var standbyState = Table{
	0: "not-supported",
	1: "providing-service",
	2: "hot-standby",
	3: "cold-standby",
	4: "idle",
}

var switchoverReason = Table{
	1:  "no switchover",
	2:  "forced active",
	3:  "board not present",
	4:  "extender chain failure",
	5:  "link failure",
	6:  "watchdog timeout",
	7:  "filesystem corrupt",
	8:  "configuration mismatch",
	9:  "board unplanned",
	10: "board locked",
	11: "shelf defense",
	12: "revertive switchover",
	13: "lanx failure",
	14: "lanx hw-failure",
	15: "lanx sdk failure",
	16: "dpoe app failure",
	17: "dpoe unreachable",
	18: "forced switchover",
}

// NTRedundancy checks the redundancy status of the NT boards in a protection group.
type NTRedundancy struct{}

// Name returns the command-line selector of the check.
func (c *NTRedundancy) Name() string {

	return "nt_redundancy"
}

// Description is the help text of the selector flag.
func (c *NTRedundancy) Description() string {

	return "checks the NT redundancy status of the given protection-group"
}

// Usage lists the flags the check accepts.
func (c *NTRedundancy) Usage() string {

	return "-s <host> -c <community> -g <groupId (1-5)> -v [verbose]"
}

// Validate requires host, community and a protection-group ID in 1..5.
func (c *NTRedundancy) Validate(p Params) error {

	if err := requireTarget(p); err != nil {

		return err
	}

	if p.GroupID == nil {

		return fmt.Errorf("%w: protection-group ID is required", ErrInvalidArgs)
	}

	if *p.GroupID < minGroupID || *p.GroupID > maxGroupID {

		return fmt.Errorf("%w: protection-group ID %d not in %d..%d", ErrThresholds, *p.GroupID, minGroupID, maxGroupID)
	}

	return nil
}

// protectionGroup is the state of one protection group and its two NTs.
type protectionGroup struct {
	ID           int
	AdminState   int
	RowState     int
	StandbyNTA   int
	StandbyNTB   int
	SwitchReason int
}

// Run reads the state of the protection group and of both NT boards.
func (c *NTRedundancy) Run(ctx context.Context, env *Env, p Params) (*Result, error) {

	if err := c.Validate(p); err != nil {

		return nil, err
	}

	groupID := *p.GroupID

	codes, vars, err := getInts(ctx, env,
		config.OIDProtectionGroupAdminState(groupID),
		config.OIDProtectionGroupRowState(groupID),
		config.OIDStandbyState(config.SlotNTA),
		config.OIDStandbyState(config.SlotNTB),
		config.OIDProtectionGroupSwitchReason(groupID),
	)

	if err != nil {

		return nil, err
	}

	env.debugf("\nSNMP - admin state: %s\n", vars[0])

	env.debugf("\nSNMP - group row state: %s\n", vars[1])

	env.debugf("\nSNMP - standby state nt-a: %s\n", vars[2])

	env.debugf("\nSNMP - standby state nt-b: %s\n", vars[3])

	env.debugf("\nSNMP - last switchover reason: %s\n", vars[4])

	group := protectionGroup{
		ID:           groupID,
		AdminState:   codes[0],
		RowState:     codes[1],
		StandbyNTA:   codes[2],
		StandbyNTB:   codes[3],
		SwitchReason: codes[4],
	}

	severity := classifyRedundancy(group)

	metric := stateMetric("redundancy_status", severity)

	var out strings.Builder

	fmt.Fprintf(&out, "ISAM NT-Redundancy is %s\n", severity)

	fmt.Fprintf(&out, "Protection Group %d\n", group.ID)

	fmt.Fprintf(&out, "Admin Status: %s\n", adminState.Label(group.AdminState))

	fmt.Fprintf(&out, "Row Status: %s\n", groupRowState.Label(group.RowState))

	fmt.Fprintf(&out, "NT-A Status: %s\n", standbyState.Label(group.StandbyNTA))

	fmt.Fprintf(&out, "NT-B Status: %s\n", standbyState.Label(group.StandbyNTB))

	fmt.Fprintf(&out, "Last Switchover Reason: %s\n", switchoverReason.Label(group.SwitchReason))

	fmt.Fprintf(&out, "| %s\n", metric)

	return &Result{
		Severity: severity,
		Output:   out.String(),
		Metrics:  []Metric{metric},
	}, nil
}

// classifyRedundancy: any code missing from its table is UNKNOWN. Otherwise a
// group that is not in service is a WARNING, and an active group is OK only
// while unlocked with NT-A serving and NT-B in hot standby.
func classifyRedundancy(g protectionGroup) Severity {

	switch {
	case g.unknown():
		return Unknown
	case g.RowState != rowActive:
		return Warning
	case g.AdminState == adminUnlock && g.StandbyNTA == providingService && g.StandbyNTB == hotStandby:
		return OK
	}

	return Critical
}

func (g protectionGroup) unknown() bool {

	for _, v := range []struct {
		code  int
		table Table
	}{
		{g.AdminState, adminState},
		{g.RowState, groupRowState},
		{g.StandbyNTA, standbyState},
		{g.StandbyNTB, standbyState},
		{g.SwitchReason, switchoverReason},
	} {

		if !v.table.Has(v.code) {

			return true
		}
	}

	return false
}
