package decommission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
)

type fakeManager struct {
	version string
	steps   []ipatypes.DecommissionStep
	calls   []string
	fail    string
}

func (f *fakeManager) HardwareManagerVersion() string                 { return f.version }
func (f *fakeManager) GetDecommissionSteps() []ipatypes.DecommissionStep { return f.steps }

func (f *fakeManager) UpdateBIOS(ipatypes.Node, []ipatypes.Port) (interface{}, error) {
	f.calls = append(f.calls, "update_bios")
	if f.fail == "update_bios" {
		return nil, assertErr
	}
	return nil, nil
}
func (f *fakeManager) UpdateFirmware(ipatypes.Node, []ipatypes.Port) (interface{}, error) {
	f.calls = append(f.calls, "update_firmware")
	return nil, nil
}
func (f *fakeManager) EraseDevices(ipatypes.Node, []ipatypes.Port) (interface{}, error) {
	f.calls = append(f.calls, "erase_devices")
	return nil, nil
}
func (f *fakeManager) VerifyProperties(ipatypes.Node, []ipatypes.Port) (interface{}, error) {
	f.calls = append(f.calls, "verify_properties")
	return "ok", nil
}

var assertErr = &ipaerrors.InvalidCommandParams{Detail: "boom"}

func TestDecommissionFirstStep(t *testing.T) {
	mgr := &fakeManager{version: "1", steps: DefaultSteps()}
	node := ipatypes.Node{DriverInfo: ipatypes.DriverInfo{DecommissionTargetState: "update_bios"}}

	result, err := Decommission(mgr, node, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "update_firmware", result.DecommissionNextState)
	assert.False(t, result.RebootRequested)
	assert.Equal(t, "1", result.HardwareManagerVersion)
	assert.Equal(t, []string{"update_bios"}, mgr.calls)
}

func TestDecommissionLastStepReturnsDone(t *testing.T) {
	mgr := &fakeManager{version: "1", steps: DefaultSteps()}
	node := ipatypes.Node{DriverInfo: ipatypes.DriverInfo{DecommissionTargetState: "verify_properties"}}

	result, err := Decommission(mgr, node, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DONE, result.DecommissionNextState)
}

func TestDecommissionVersionMismatch(t *testing.T) {
	mgr := &fakeManager{version: "1", steps: DefaultSteps()}
	node := ipatypes.Node{DriverInfo: ipatypes.DriverInfo{
		DecommissionTargetState: "verify_properties",
		HardwareManagerVersion:  "0",
	}}

	_, err := Decommission(mgr, node, nil, nil)

	var wrong *ipaerrors.WrongDecommissionVersion
	require.ErrorAs(t, err, &wrong)
}

func TestDecommissionMissingTarget(t *testing.T) {
	mgr := &fakeManager{version: "1", steps: DefaultSteps()}
	node := ipatypes.Node{}

	_, err := Decommission(mgr, node, nil, nil)

	var dec *ipaerrors.Decommission
	require.ErrorAs(t, err, &dec)
	assert.Equal(t, ipaerrors.DecommissionMissingTarget, dec.Reason)
}

func TestDecommissionUnknownState(t *testing.T) {
	mgr := &fakeManager{version: "1", steps: DefaultSteps()}
	node := ipatypes.Node{DriverInfo: ipatypes.DriverInfo{DecommissionTargetState: "reticulate_splines"}}

	_, err := Decommission(mgr, node, nil, nil)

	var dec *ipaerrors.Decommission
	require.ErrorAs(t, err, &dec)
	assert.Equal(t, ipaerrors.DecommissionUnknownState, dec.Reason)
}

func TestDecommissionStepFailure(t *testing.T) {
	mgr := &fakeManager{version: "1", steps: DefaultSteps(), fail: "update_bios"}
	node := ipatypes.Node{DriverInfo: ipatypes.DriverInfo{DecommissionTargetState: "update_bios"}}

	_, err := Decommission(mgr, node, nil, nil)

	var dec *ipaerrors.Decommission
	require.ErrorAs(t, err, &dec)
	assert.Equal(t, ipaerrors.DecommissionStepFailed, dec.Reason)
}

func TestDecommissionExplicitEmptyTargetStartsFromFirstSortedStep(t *testing.T) {
	mgr := &fakeManager{version: "1", steps: DefaultSteps()}
	node := ipatypes.Node{}
	target := ""

	result, err := Decommission(mgr, node, nil, &target)
	require.NoError(t, err)
	assert.Equal(t, "update_firmware", result.DecommissionNextState)
	assert.Equal(t, []string{"update_bios"}, mgr.calls)
}

func TestDecommissionExplicitTargetDoesNotReorder(t *testing.T) {
	mgr := &fakeManager{version: "1", steps: DefaultSteps()}
	node := ipatypes.Node{}
	target := "erase_devices"

	result, err := Decommission(mgr, node, nil, &target)
	require.NoError(t, err)
	assert.Equal(t, "verify_properties", result.DecommissionNextState)
	assert.Equal(t, []string{"erase_devices"}, mgr.calls)
}
