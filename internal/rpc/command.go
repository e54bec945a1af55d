// Package rpc defines the agent's command surface and dispatches each
// named command into the core subsystems. It implements only the
// interface boundary: no HTTP transport, no control-plane
// heartbeat/lookup, no extension registration.
package rpc

import (
	"github.com/supermari0/ironic-python-agent/internal/agent"
	"github.com/supermari0/ironic-python-agent/internal/decommission"
	"github.com/supermari0/ironic-python-agent/internal/hardware"
	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
	"github.com/supermari0/ironic-python-agent/internal/procexec"
	"github.com/supermari0/ironic-python-agent/internal/rescue"
	"github.com/supermari0/ironic-python-agent/pkg/agentlog"
)

// Status is the command_status returned to the controller.
type Status string

const (
	Succeeded Status = "SUCCEEDED"
	Failed    Status = "FAILED"
)

// Command is the union of every command surface's inputs; a given Name
// only reads the fields that command actually uses.
type Command struct {
	Name string

	Node  ipatypes.Node
	Ports []ipatypes.Port

	TargetState *string

	ImageInfo   ipatypes.ImageInfo
	Force       bool
	ConfigDrive string

	Properties ipatypes.Properties
	Extra      map[string]interface{}

	RescuePasswordHash string
	RescuePassword     string
	RescueMode         rescue.ShadowMode
}

// Response is the result shape every dispatched command returns.
type Response struct {
	Status       Status
	Result       interface{}
	ErrorKind    string
	ErrorMessage string

	// StopServingAPI is set by finalize_rescue to signal the (external)
	// dispatcher to stop serving the control-plane API.
	StopServingAPI bool
}

func ok(result interface{}) Response {
	return Response{Status: Succeeded, Result: result}
}

func fail(err error) Response {
	return Response{Status: Failed, ErrorKind: errorKind(err), ErrorMessage: err.Error()}
}

// Dispatch routes cmd to its handler. mgr is the process-wide elected
// hardware manager (hardware.Elect()); cache is the per-agent image cache;
// runner backs run_image's reboot step and rescue's usermod path.
func Dispatch(mgr hardware.Manager, cache *agent.ImageCache, runner procexec.CommandRunner, cmd Command) Response {
	switch cmd.Name {
	case "erase_hardware":
		result, err := mgr.EraseDevices(cmd.Node, cmd.Ports)
		if err != nil {
			return fail(err)
		}
		return ok(result)

	case "get_hardware_manager_version":
		return ok(map[string]string{"hardware_manager_version": mgr.HardwareManagerVersion()})

	case "get_decommission_steps":
		return ok(map[string]interface{}{"decommission_steps": mgr.GetDecommissionSteps()})

	case "get_logs":
		return ok(map[string]interface{}{"log": agentlog.Dump()})

	case "decommission":
		result, err := decommission.Decommission(mgr, cmd.Node, cmd.Ports, cmd.TargetState)
		if err != nil {
			return fail(err)
		}
		return ok(result)

	case "cache_image":
		if err := cache.CacheImage(mgr, cmd.ImageInfo, cmd.Force); err != nil {
			return fail(err)
		}
		return ok(nil)

	case "prepare_image":
		if err := cache.PrepareImage(mgr, cmd.ImageInfo, cmd.ConfigDrive); err != nil {
			return fail(err)
		}
		return ok(nil)

	case "run_image":
		if err := agent.RunImage(runner); err != nil {
			return fail(err)
		}
		return ok(nil)

	case "verify_hardware":
		if err := mgr.VerifyHardware(cmd.Properties, cmd.Ports, cmd.Extra); err != nil {
			return fail(err)
		}
		return ok(nil)

	case "prepare_rescue":
		if err := rescue.PrepareRescue(cmd.RescueMode, runner, cmd.RescuePasswordHash); err != nil {
			return fail(err)
		}
		return ok(nil)

	case "finalize_rescue":
		if err := rescue.FinalizeRescue(cmd.RescuePassword, cmd.ConfigDrive); err != nil {
			return fail(err)
		}
		return Response{Status: Succeeded, StopServingAPI: true}

	default:
		return fail(&unknownCommand{name: cmd.Name})
	}
}

type unknownCommand struct{ name string }

func (e *unknownCommand) Error() string { return "unknown command: " + e.name }
