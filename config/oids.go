package config

import "strconv"

// Equipment board table (ASAM-EQUIP-MIB)
const (
	OIDBoardActualType         = "1.3.6.1.4.1.637.61.1.23.3.1.3"
	OIDBoardOperationalStatus  = "1.3.6.1.4.1.637.61.1.23.3.1.7"
	OIDBoardAvailabilityStatus = "1.3.6.1.4.1.637.61.1.23.3.1.8"
)

// Board temperature sensors
const (
	OIDTemperatureActual  = "1.3.6.1.4.1.637.61.1.23.10.1.2"
	OIDTemperatureTcaLow  = "1.3.6.1.4.1.637.61.1.23.10.1.3"
	OIDTemperatureShutLow = "1.3.6.1.4.1.637.61.1.23.10.1.5"
)

// Auto-backup of the configuration database
const (
	OIDBackupDownloadProgress = "1.3.6.1.4.1.637.61.1.24.2.4.0"
	OIDBackupDownloadError    = "1.3.6.1.4.1.637.61.1.24.2.5.0"
	OIDBackupUploadProgress   = "1.3.6.1.4.1.637.61.1.24.2.9.0"
	OIDBackupUploadError      = "1.3.6.1.4.1.637.61.1.24.2.10.0"
)

// PON utilization, values are percent * 100
const (
	OIDPonTxUtilization = "1.3.6.1.4.1.637.61.1.35.21.57.1.6"
	OIDPonRxUtilization = "1.3.6.1.4.1.637.61.1.35.21.57.1.7"
)

// NT protection groups
const (
	oidProtectionGroupSwitchReason = "1.3.6.1.4.1.637.61.1.23.5.2.1.5"
	oidProtectionGroupAdminState   = "1.3.6.1.4.1.637.61.1.23.5.2.1.8"
	oidProtectionGroupRowState     = "1.3.6.1.4.1.637.61.1.23.5.2.1.11"
	oidProtectionElementStandby    = "1.3.6.1.4.1.637.61.1.23.5.3.1.3"
)

// OIDProtectionGroupAdminState returns the admin-state OID of protection group groupID.
func OIDProtectionGroupAdminState(groupID int) string {

	return indexed(oidProtectionGroupAdminState, groupID)
}

// OIDProtectionGroupRowState returns the row-status OID of protection group groupID.
func OIDProtectionGroupRowState(groupID int) string {

	return indexed(oidProtectionGroupRowState, groupID)
}

// OIDProtectionGroupSwitchReason returns the last-switchover-reason OID of protection group groupID.
func OIDProtectionGroupSwitchReason(groupID int) string {

	return indexed(oidProtectionGroupSwitchReason, groupID)
}

// OIDStandbyState returns the standby-state OID of the board in slot.
func OIDStandbyState(slot int) string {

	return indexed(oidProtectionElementStandby, slot)
}

func indexed(oid string, index int) string {

	return oid + "." + strconv.Itoa(index)
}
