package checks

import (
	"check_isam/config"
	"check_isam/snmp"
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrSNMP marks missing data from the device: an empty walk, a missing
	// object or walks of different length.
	ErrSNMP = errors.New("snmp error")

	// ErrInvalidArgs is returned by Validate when a required parameter is missing.
	ErrInvalidArgs = errors.New("invalid arguments")

	// ErrThresholds is returned by Validate when a numeric parameter is out of range.
	ErrThresholds = errors.New("thresholds not acceptable")
)

// Checker is the interface that all ISAM checks implement.
type Checker interface {
	// Name is the check selector, e.g. "board_availability".
	Name() string

	// Description is a one-line help text.
	Description() string

	// Usage lists the flags the check needs, e.g. "-s <host> -c <community>".
	Usage() string

	// Validate rejects parameters before the device is contacted.
	Validate(p Params) error

	// Run queries the device and classifies the answer.
	Run(ctx context.Context, env *Env, p Params) (*Result, error)
}

// Params are the per-invocation parameters. Optional numbers are nil when not given.
type Params struct {
	Host      string
	Community string
	Verbose   bool
	Warning   *int
	Critical  *int
	GroupID   *int
}

// Env carries the collaborators and static tables a check runs against.
type Env struct {
	SNMP        snmp.Querier
	Slots       config.SlotMapping
	Temperature config.Temperature

	// Verbose receives raw query results and intermediate values. Nil disables it.
	Verbose io.Writer
}

func (e *Env) debugf(format string, args ...interface{}) {

	if e.Verbose == nil {

		return
	}

	fmt.Fprintf(e.Verbose, format, args...)
}

func (e *Env) debugVars(title string, vars []snmp.Variable) {

	e.debugf("\nSNMP - %s:\n", title)

	for _, v := range vars {

		e.debugf("%s\n", v)
	}
}

func requireTarget(p Params) error {

	if p.Host == "" || p.Community == "" {

		return fmt.Errorf("%w: host and community are required", ErrInvalidArgs)
	}

	return nil
}
