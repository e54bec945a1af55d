// Package inventory enumerates the node's block devices, NICs, CPU, and
// memory. Block-device parsing is grounded on the KEY="value" lsblk line
// format exercised by the juju diskmanager lsblk tests in the retrieved
// pack; NIC enumeration is grounded on cmd/miniccc/client.go's
// updateNetworkInfo, generalized from net.Interfaces() to a sysfs walk so
// switch port/chassis descriptors (populated by the control plane from LLDP
// data, not discoverable locally) have somewhere to live.
package inventory

// BlockDevice is a disk as reported by lsblk. size > 0 is required for any
// device considered for install.
type BlockDevice struct {
	Name       string // absolute device path, e.g. /dev/sda
	Model      string
	SizeBytes  uint64
	Rotational bool
}

// NetworkInterface is a NIC with a backing device node under
// /sys/class/net. Interfaces with no device symlink are excluded.
type NetworkInterface struct {
	Name                string
	MACAddress          string // 6-byte colon-hex
	SwitchPortDescr     string
	SwitchChassisDescr  string
}

// CPU summarizes the node's processor.
type CPU struct {
	ModelName    string
	FrequencyMHz string
	Count        uint32
}

// Memory summarizes the node's physical RAM.
type Memory struct {
	TotalBytes uint64
}
