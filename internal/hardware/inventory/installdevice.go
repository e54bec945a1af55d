package inventory

import "sort"

// MinInstallDeviceBytes is the smallest disk size eligible to hold the OS,
// 4 GiB. A disk of exactly this size qualifies; one byte short does not.
const MinInstallDeviceBytes = 4 * 1024 * 1024 * 1024

// SelectOSInstallDevice returns the smallest disk whose size is at least
// MinInstallDeviceBytes, breaking ties by the original (stable) order of
// devices. It returns false if no disk qualifies.
func SelectOSInstallDevice(devices []BlockDevice) (BlockDevice, bool) {
	var candidates []BlockDevice
	for _, d := range devices {
		if d.SizeBytes >= MinInstallDeviceBytes {
			candidates = append(candidates, d)
		}
	}

	if len(candidates) == 0 {
		return BlockDevice{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SizeBytes < candidates[j].SizeBytes
	})

	return candidates[0], true
}
