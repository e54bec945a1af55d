package inventory

import (
	"fmt"
	"runtime"

	procinfo "github.com/c9s/goprocinfo/linux"
)

// GetCPU reads /proc/cpuinfo via goprocinfo and counts logical CPUs via the
// Go runtime (equivalent to the number of processor entries in
// /proc/cpuinfo on Linux).
func GetCPU() (CPU, error) {
	info, err := procinfo.ReadCPUInfo("/proc/cpuinfo")
	if err != nil {
		return CPU{}, err
	}
	if len(info.Processors) == 0 {
		return CPU{}, fmt.Errorf("no processor entries in /proc/cpuinfo")
	}

	first := info.Processors[0]
	return CPU{
		ModelName:    first.ModelName,
		FrequencyMHz: fmt.Sprintf("%v", first.CPUMHz),
		Count:        uint32(runtime.NumCPU()),
	}, nil
}
