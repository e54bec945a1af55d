// Package decommission implements the ordered, priority-driven, resumable
// decommission state machine. It never persists state: the controller
// threads driver_info.decommission_target_state and
// hardware_manager_version back on the next call, a call-and-response
// shape where no session exists and every field needed to resume
// travels with the request.
package decommission

import "github.com/supermari0/ironic-python-agent/internal/ipatypes"

func intPtr(i int) *int { return &i }

// DefaultSteps is the priority-ordered step set every generic hardware
// manager exposes. A hardware manager may override this with its own
// GetDecommissionSteps.
func DefaultSteps() []ipatypes.DecommissionStep {
	return []ipatypes.DecommissionStep{
		{State: "update_bios", Function: "update_bios", Priority: intPtr(10), RebootRequested: false},
		{State: "update_firmware", Function: "update_firmware", Priority: intPtr(20), RebootRequested: false},
		{State: "erase_devices", Function: "erase_devices", Priority: intPtr(30), RebootRequested: false},
		{State: "verify_properties", Function: "verify_properties", Priority: intPtr(40), RebootRequested: false},
	}
}
