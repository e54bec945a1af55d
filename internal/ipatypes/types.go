// Package ipatypes holds the data-model types shared across the hardware,
// decommission, and imaging packages, so none of them needs to import
// another to describe its own interface. The explicit-struct-field style
// (no embedded maps-of-interface{}) follows ron.Command/ron.Response in the
// teacher's remote-agent protocol.
package ipatypes

import "fmt"

// ImageInfo describes an image to fetch and write. Checksum is the image's
// hex MD5. Validate, run at entry to image commands, checks only that ID,
// URLs and Checksum are non-empty; it does not check the checksum's length,
// case or hex alphabet.
type ImageInfo struct {
	ID              string
	URLs            []string
	Checksum        string
	DiskFormat      string
	ContainerFormat string
}

// Validate enforces ImageInfo's entry invariants.
func (i ImageInfo) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("image_info: id is required")
	}
	if len(i.URLs) == 0 {
		return fmt.Errorf("image_info: urls must be non-empty")
	}
	if i.Checksum == "" {
		return fmt.Errorf("image_info: checksum is required")
	}
	return nil
}

// DecommissionStep is one entry in an ordered sequence that prepares
// hardware for re-use. Priority is a pointer so "none" (excluded from
// normal ordering) is distinguishable from priority 0.
type DecommissionStep struct {
	State          string
	Function       string
	Priority       *int
	RebootRequested bool
}

// DriverInfo is the subset of node.driver_info the decommission engine
// reads and the controller is expected to thread back on the next call.
type DriverInfo struct {
	DecommissionTargetState string
	HardwareManagerVersion  string
}

// Node is the decommission-relevant subset of the control plane's node
// representation.
type Node struct {
	DriverInfo DriverInfo
	Properties map[string]interface{}
}

// Port is an opaque network port reference threaded through decommission
// steps that need to reconfigure switch state; the agent core never
// interprets it directly.
type Port struct {
	UUID    string
	Address string
}

// Properties is the declared hardware the controller expects, used by
// verify_hardware.
type Properties struct {
	CPUs      int
	MemoryMB  int
	LocalGB   int
}
