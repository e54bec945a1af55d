// Package verify compares declared vs observed hardware properties. The
// caller supplies the inventory snapshot to compare against.
package verify

import (
	"github.com/supermari0/ironic-python-agent/internal/hardware/inventory"
	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
)

// Hardware compares the snapshot r and installDevice against declared.
func Hardware(r inventory.Snapshot, installDevice *inventory.BlockDevice, declared ipatypes.Properties) error {
	actualCPUs := int(r.CPU.Count)
	if declared.CPUs != actualCPUs {
		return &ipaerrors.VerificationFailed{Field: "cpus", Given: declared.CPUs, Actual: actualCPUs}
	}

	actualMemMB := int(r.Memory.TotalBytes / (1024 * 1024))
	if declared.MemoryMB != actualMemMB {
		return &ipaerrors.VerificationFailed{Field: "memory_mb", Given: declared.MemoryMB, Actual: actualMemMB}
	}

	if installDevice == nil {
		if declared.LocalGB > 0 {
			return &ipaerrors.VerificationFailed{Field: "local_gb", Given: declared.LocalGB, Actual: 0}
		}
		return nil
	}

	actualGB := int(installDevice.SizeBytes / (1024 * 1024 * 1024))
	if declared.LocalGB != actualGB {
		return &ipaerrors.VerificationFailed{Field: "local_gb", Given: declared.LocalGB, Actual: actualGB}
	}

	return nil
}
