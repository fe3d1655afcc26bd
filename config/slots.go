package config

import "fmt"

// Chassis slot identifiers of the two network-termination boards.
const (
	SlotNTA = 4353
	SlotNTB = 4354
)

// SlotMapping maps the numeric chassis-slot identifier used as OID index to the
// slot name printed by the checks.
type SlotMapping map[int]string

// DefaultSlotMapping returns the slot layout of a single-shelf ISAM with eight LT slots.
func DefaultSlotMapping() SlotMapping {

	return SlotMapping{
		4352:    "acu:1/1",
		SlotNTA: "nt-a",
		SlotNTB: "nt-b",
		4355:    "lt:1/1/1",
		4356:    "lt:1/1/2",
		4357:    "lt:1/1/3",
		4358:    "lt:1/1/4",
		4359:    "lt:1/1/5",
		4360:    "lt:1/1/6",
		4361:    "lt:1/1/7",
		4362:    "lt:1/1/8",
		4417:    "vlt:1/1/63",
		4418:    "vlt:1/1/64",
	}
}

// Label returns the slot name for id, or "slot-<id>" when the slot is not mapped.
func (s SlotMapping) Label(id int) string {

	if label, ok := s[id]; ok {

		return label
	}

	return fmt.Sprintf("slot-%d", id)
}
