package snmp

import (
	"fmt"
	"strconv"
	"strings"
)

// Variable is one (OID, value) pair with the value rendered as text.
type Variable struct {
	OID   string
	Value string
}

func (v Variable) String() string {

	return fmt.Sprintf("<Variable oid='%s', value='%s'>", v.OID, v.Value)
}

// Int parses the value as a decimal integer.
func (v Variable) Int() (int, error) {

	n, err := strconv.Atoi(strings.TrimSpace(v.Value))

	if err != nil {

		return 0, fmt.Errorf("value %q of %s is not an integer", v.Value, v.OID)
	}

	return n, nil
}

// Float parses the value as a decimal number.
func (v Variable) Float() (float64, error) {

	f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)

	if err != nil {

		return 0, fmt.Errorf("value %q of %s is not a number", v.Value, v.OID)
	}

	return f, nil
}

// Index returns the n-th numeric OID component counted from the end, n=1 being the last.
func (v Variable) Index(n int) (int, error) {

	parts := strings.Split(v.OID, ".")

	if n < 1 || n > len(parts) {

		return 0, fmt.Errorf("oid %s has no component %d from the end", v.OID, n)
	}

	idx, err := strconv.Atoi(parts[len(parts)-n])

	if err != nil {

		return 0, fmt.Errorf("oid %s: component %q is not numeric", v.OID, parts[len(parts)-n])
	}

	return idx, nil
}
