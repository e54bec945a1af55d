package decommission

import (
	"sort"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
)

// DONE is the terminal next-state returned once the last sorted step has
// run.
const DONE = "DONE"

// Manager is the subset of hardware.Manager the engine needs. Any
// hardware.Manager value satisfies this structurally; decommission does
// not import the hardware package to avoid a cycle (hardware's
// GetImageManager/Manager interface lives alongside the registry that
// drives this engine).
type Manager interface {
	HardwareManagerVersion() string
	GetDecommissionSteps() []ipatypes.DecommissionStep

	UpdateBIOS(node ipatypes.Node, ports []ipatypes.Port) (interface{}, error)
	UpdateFirmware(node ipatypes.Node, ports []ipatypes.Port) (interface{}, error)
	EraseDevices(node ipatypes.Node, ports []ipatypes.Port) (interface{}, error)
	VerifyProperties(node ipatypes.Node, ports []ipatypes.Port) (interface{}, error)
}

// Result is what a decommission call returns to the controller.
type Result struct {
	DecommissionNextState  string
	RebootRequested        bool
	StepReturnValue        interface{}
	HardwareManagerVersion string
}

// sortedNormalSteps returns steps with priority != nil, sorted ascending by
// priority. Steps with priority == nil are excluded from normal ordering
// and reachable only by explicit target.
func sortedNormalSteps(steps []ipatypes.DecommissionStep) []ipatypes.DecommissionStep {
	var out []ipatypes.DecommissionStep
	for _, s := range steps {
		if s.Priority != nil {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].Priority < *out[j].Priority
	})
	return out
}

// Decommission walks one step of the decommission state machine.
func Decommission(mgr Manager, node ipatypes.Node, ports []ipatypes.Port, explicitTarget *string) (*Result, error) {
	versionOnNode := node.DriverInfo.HardwareManagerVersion
	if versionOnNode != "" && versionOnNode != mgr.HardwareManagerVersion() {
		return nil, &ipaerrors.WrongDecommissionVersion{
			AgentVersion: mgr.HardwareManagerVersion(),
			NodeVersion:  versionOnNode,
		}
	}

	steps := mgr.GetDecommissionSteps()
	sorted := sortedNormalSteps(steps)

	var target string
	explicit := explicitTarget != nil
	if explicit {
		target = *explicitTarget
	} else {
		target = node.DriverInfo.DecommissionTargetState
		if target == "" {
			return nil, &ipaerrors.Decommission{Reason: ipaerrors.DecommissionMissingTarget}
		}
	}

	var current *ipatypes.DecommissionStep

	if target != "" {
		// An explicit target must resolve against the full (unfiltered) step
		// set, since callers may target a priority=none step; an implicit
		// (driver_info-derived) target only ever matches the sorted set.
		candidates := sorted
		if explicit {
			candidates = steps
		}
		for _, s := range candidates {
			if s.State == target {
				st := s
				current = &st
				break
			}
		}
	}

	if current == nil && target == "" && len(sorted) > 0 {
		// Initial call: caller passed an explicit-but-empty target, meaning
		// "start from the top".
		st := sorted[0]
		current = &st
	}

	if current == nil {
		return nil, &ipaerrors.Decommission{Reason: ipaerrors.DecommissionUnknownState}
	}

	returnVal, err := dispatch(mgr, current.Function, node, ports)
	if err != nil {
		if _, ok := err.(*ipaerrors.Decommission); ok {
			return nil, err
		}
		return nil, &ipaerrors.Decommission{Reason: ipaerrors.DecommissionStepFailed, Cause: err}
	}

	next := DONE
	// Next state is always computed from the full sorted list, regardless
	// of whether this invocation was explicit.
	for i, s := range sorted {
		if s.State == current.State {
			if i+1 < len(sorted) {
				next = sorted[i+1].State
			}
			break
		}
	}

	return &Result{
		DecommissionNextState:  next,
		RebootRequested:        current.RebootRequested,
		StepReturnValue:        returnVal,
		HardwareManagerVersion: mgr.HardwareManagerVersion(),
	}, nil
}

func dispatch(mgr Manager, function string, node ipatypes.Node, ports []ipatypes.Port) (interface{}, error) {
	switch function {
	case "update_bios":
		return mgr.UpdateBIOS(node, ports)
	case "update_firmware":
		return mgr.UpdateFirmware(node, ports)
	case "erase_devices":
		return mgr.EraseDevices(node, ports)
	case "verify_properties":
		return mgr.VerifyProperties(node, ports)
	default:
		return nil, &ipaerrors.Decommission{Reason: ipaerrors.DecommissionUnknownFunction}
	}
}
