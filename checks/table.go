package checks

import "fmt"

// Table decodes a status code reported by the device into a label.
type Table map[int]string

// Label never fails: codes missing from the table render as "unknown code <n>".
func (t Table) Label(code int) string {

	if label, ok := t[code]; ok {

		return label
	}

	return fmt.Sprintf("unknown code %d", code)
}

// Has reports whether code is a documented value of the table.
func (t Table) Has(code int) bool {

	_, ok := t[code]

	return ok
}

func codeSet(codes ...int) map[int]bool {

	set := make(map[int]bool, len(codes))

	for _, c := range codes {

		set[c] = true
	}

	return set
}
