package hardware

import (
	"os"

	"github.com/supermari0/ironic-python-agent/internal/decommission"
	"github.com/supermari0/ironic-python-agent/internal/hardware/ataerase"
	"github.com/supermari0/ironic-python-agent/internal/hardware/inventory"
	"github.com/supermari0/ironic-python-agent/internal/imaging"
	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
	"github.com/supermari0/ironic-python-agent/internal/procexec"
	"github.com/supermari0/ironic-python-agent/internal/verify"
)

func init() {
	Register(NewGenericManager(procexec.New(), os.TempDir()))
}

// ManagerVersion is the generic manager's HARDWARE_MANAGER_VERSION. It is
// opaque to the protocol but must change whenever this manager's behavior
// changes in a way that would invalidate a decommission walk in progress.
const ManagerVersion = "1"

// GenericManager is the baseline hardware.Manager: it always ranks itself
// RankGeneric, so it's elected whenever no more specific manager (mainline
// or service-provider) is registered, and it provides every operation's
// default implementation.
type GenericManager struct {
	runner procexec.CommandRunner
	tmpDir string
}

func NewGenericManager(runner procexec.CommandRunner, tmpDir string) *GenericManager {
	return &GenericManager{runner: runner, tmpDir: tmpDir}
}

func (g *GenericManager) EvaluateHardwareSupport() Rank { return RankGeneric }

func (g *GenericManager) HardwareManagerVersion() string { return ManagerVersion }

func (g *GenericManager) ListHardware() (inventory.Snapshot, error) {
	return inventory.Take(g.runner)
}

// EraseBlockDevice erases dev via the ATA driver. The generic manager has
// no alternate erase method to fall back to, so ataerase.ErrNotAttempted
// is fatal here, same as every other erase failure.
func (g *GenericManager) EraseBlockDevice(dev inventory.BlockDevice) error {
	return ataerase.Erase(g.runner, dev.Name)
}

func (g *GenericManager) EraseDevices(node ipatypes.Node, ports []ipatypes.Port) (interface{}, error) {
	snap, err := g.ListHardware()
	if err != nil {
		return nil, err
	}

	erased := make([]string, 0, len(snap.BlockDevices))
	for _, dev := range snap.BlockDevices {
		if err := g.EraseBlockDevice(dev); err != nil {
			return nil, err
		}
		erased = append(erased, dev.Name)
	}

	return erased, nil
}

func (g *GenericManager) UpdateBIOS(node ipatypes.Node, ports []ipatypes.Port) (interface{}, error) {
	// The generic manager has no BIOS-update mechanism of its own; a
	// vendor-specific manager overrides this. Nothing to do is success.
	return nil, nil
}

func (g *GenericManager) UpdateFirmware(node ipatypes.Node, ports []ipatypes.Port) (interface{}, error) {
	return nil, nil
}

func (g *GenericManager) VerifyProperties(node ipatypes.Node, ports []ipatypes.Port) (interface{}, error) {
	props, err := propertiesFromNode(node)
	if err != nil {
		return nil, err
	}
	return nil, g.VerifyHardware(props, ports, nil)
}

func propertiesFromNode(node ipatypes.Node) (ipatypes.Properties, error) {
	var p ipatypes.Properties

	get := func(key string) (int, bool) {
		v, ok := node.Properties[key]
		if !ok {
			return 0, false
		}
		switch n := v.(type) {
		case int:
			return n, true
		case float64:
			return int(n), true
		default:
			return 0, false
		}
	}

	cpus, ok := get("cpus")
	if !ok {
		return p, &ipaerrors.Verification{Reason: ipaerrors.VerificationMissingInventory}
	}
	memMB, ok := get("memory_mb")
	if !ok {
		return p, &ipaerrors.Verification{Reason: ipaerrors.VerificationMissingInventory}
	}
	localGB, ok := get("local_gb")
	if !ok {
		return p, &ipaerrors.Verification{Reason: ipaerrors.VerificationMissingInventory}
	}

	p.CPUs, p.MemoryMB, p.LocalGB = cpus, memMB, localGB
	return p, nil
}

func (g *GenericManager) GetOSInstallDevice() (inventory.BlockDevice, bool, error) {
	snap, err := g.ListHardware()
	if err != nil {
		return inventory.BlockDevice{}, false, err
	}
	dev, ok := inventory.SelectOSInstallDevice(snap.BlockDevices)
	return dev, ok, nil
}

func (g *GenericManager) GetDecommissionSteps() []ipatypes.DecommissionStep {
	return decommission.DefaultSteps()
}

func (g *GenericManager) VerifyHardware(declared ipatypes.Properties, ports []ipatypes.Port, extra map[string]interface{}) error {
	snap, err := g.ListHardware()
	if err != nil {
		return &ipaerrors.Verification{Reason: ipaerrors.VerificationMissingInventory}
	}

	dev, hasDev, err := g.GetOSInstallDevice()
	if err != nil {
		return err
	}

	var devPtr *inventory.BlockDevice
	if hasDev {
		devPtr = &dev
	}

	return verify.Hardware(snap, devPtr, declared)
}

func (g *GenericManager) GetImageManager(info ipatypes.ImageInfo) imaging.Writer {
	return imaging.SelectWriter(g.tmpDir, g.runner, info)
}

var _ Manager = (*GenericManager)(nil)
