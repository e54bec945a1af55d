package inventory

import (
	procinfo "github.com/c9s/goprocinfo/linux"
	"golang.org/x/sys/unix"
)

// GetMemory reports total physical memory. It prefers unix.Sysinfo (a
// direct syscall, no text parsing) and falls back to /proc/meminfo's
// MemTotal line on platforms where Sysinfo is unavailable or returns a
// zero total.
func GetMemory() (Memory, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err == nil && info.Totalram > 0 {
		return Memory{TotalBytes: uint64(info.Totalram) * uint64(info.Unit)}, nil
	}

	return memoryFromProc()
}

func memoryFromProc() (Memory, error) {
	info, err := procinfo.ReadMemInfo("/proc/meminfo")
	if err != nil {
		return Memory{}, err
	}
	return Memory{TotalBytes: info.MemTotal * 1024}, nil
}

// FreeBytes reports free space on the filesystem backing path, via
// unix.Statfs. Used by config-drive decoding to refuse a payload before it
// would fail partway through.
func FreeBytes(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return st.Bavail * uint64(st.Bsize), nil
}
