// Package hardware defines the pluggable hardware-manager capability
// interface and the process-wide elected-manager registry. Managers rank
// themselves via EvaluateHardwareSupport, and the registry hands every
// caller the same highest-ranked instance for the life of the process.
package hardware

import (
	"github.com/supermari0/ironic-python-agent/internal/imaging"
	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
	"github.com/supermari0/ironic-python-agent/internal/hardware/inventory"
)

// Rank is a manager's fitness for the running node. Higher wins.
type Rank int

const (
	RankNone            Rank = 0
	RankGeneric         Rank = 1
	RankMainline        Rank = 2
	RankServiceProvider Rank = 3
)

// Manager is the full capability set every hardware manager must provide.
type Manager interface {
	// EvaluateHardwareSupport returns this manager's fitness for the
	// currently running node. The registry elects the manager with the
	// highest returned rank.
	EvaluateHardwareSupport() Rank

	// HardwareManagerVersion is an opaque string recorded in decommission
	// responses and compared against driver_info.hardware_manager_version
	// to detect manager drift across a decommission walk.
	HardwareManagerVersion() string

	ListHardware() (inventory.Snapshot, error)

	EraseBlockDevice(dev inventory.BlockDevice) error
	EraseDevices(node ipatypes.Node, ports []ipatypes.Port) (interface{}, error)

	UpdateBIOS(node ipatypes.Node, ports []ipatypes.Port) (interface{}, error)
	UpdateFirmware(node ipatypes.Node, ports []ipatypes.Port) (interface{}, error)
	VerifyProperties(node ipatypes.Node, ports []ipatypes.Port) (interface{}, error)

	GetOSInstallDevice() (inventory.BlockDevice, bool, error)

	GetDecommissionSteps() []ipatypes.DecommissionStep

	VerifyHardware(declared ipatypes.Properties, ports []ipatypes.Port, extra map[string]interface{}) error

	GetImageManager(info ipatypes.ImageInfo) imaging.Writer
}
