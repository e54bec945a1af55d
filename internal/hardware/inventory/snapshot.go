package inventory

import "github.com/supermari0/ironic-python-agent/internal/procexec"

// Snapshot is a full inventory pull, created on demand and never mutated
// or persisted.
type Snapshot struct {
	BlockDevices []BlockDevice
	NICs         []NetworkInterface
	CPU          CPU
	Memory       Memory
}

// Take builds a fresh Snapshot from sysfs/proc/lsblk.
func Take(r procexec.CommandRunner) (Snapshot, error) {
	var snap Snapshot
	var err error

	snap.BlockDevices, err = ListBlockDevices(r)
	if err != nil {
		return Snapshot{}, err
	}

	snap.NICs, err = ListNetworkInterfaces()
	if err != nil {
		return Snapshot{}, err
	}

	snap.CPU, err = GetCPU()
	if err != nil {
		return Snapshot{}, err
	}

	snap.Memory, err = GetMemory()
	if err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}
