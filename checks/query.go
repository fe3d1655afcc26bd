package checks

import (
	"check_isam/snmp"
	"context"
	"errors"
	"fmt"
)

// get fetches a scalar and turns a missing object into ErrSNMP.
// Transport errors are passed through unchanged.
func get(ctx context.Context, env *Env, oid string) (snmp.Variable, error) {

	v, err := env.SNMP.Get(ctx, oid)

	if errors.Is(err, snmp.ErrNoData) {

		return snmp.Variable{}, fmt.Errorf("%w: %s", ErrSNMP, err)
	}

	if err != nil {

		return snmp.Variable{}, err
	}

	return v, nil
}

// getInts fetches each oid in turn and parses the values as integers.
func getInts(ctx context.Context, env *Env, oids ...string) ([]int, []snmp.Variable, error) {

	vars := make([]snmp.Variable, 0, len(oids))

	for _, oid := range oids {

		v, err := get(ctx, env, oid)

		if err != nil {

			return nil, nil, err
		}

		vars = append(vars, v)
	}

	codes, err := ints(vars)

	if err != nil {

		return nil, nil, err
	}

	return codes, vars, nil
}

// walkColumns walks each table column in turn. Every column must be non-empty
// and all columns must have the same length, so that index i addresses the
// same row in each of them.
func walkColumns(ctx context.Context, env *Env, oids ...string) ([][]snmp.Variable, error) {

	columns := make([][]snmp.Variable, 0, len(oids))

	for _, oid := range oids {

		vars, err := env.SNMP.Walk(ctx, oid)

		if errors.Is(err, snmp.ErrNoData) {

			return nil, fmt.Errorf("%w: %s", ErrSNMP, err)
		}

		if err != nil {

			return nil, err
		}

		if len(vars) == 0 {

			return nil, fmt.Errorf("%w: walk of %s returned no values", ErrSNMP, oid)
		}

		if len(columns) > 0 && len(vars) != len(columns[0]) {

			return nil, fmt.Errorf("%w: walk of %s returned %d values, expected %d", ErrSNMP, oid, len(vars), len(columns[0]))
		}

		columns = append(columns, vars)
	}

	return columns, nil
}

func ints(vars []snmp.Variable) ([]int, error) {

	values := make([]int, len(vars))

	for i, v := range vars {

		n, err := v.Int()

		if err != nil {

			return nil, err
		}

		values[i] = n
	}

	return values, nil
}
