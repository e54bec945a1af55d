package inventory

import (
	"os"
	"path/filepath"
	"strings"
)

// sysClassNet is the sysfs path to enumerate NICs from. It is rebased to
// /mnt/sys when that prefix exists, matching how the agent runs inside a
// transient ramdisk that may have the real host's sysfs bind-mounted
// elsewhere.
var sysClassNet = "/sys/class/net"

func netRoot() string {
	if _, err := os.Stat("/mnt/sys"); err == nil {
		return "/mnt/sys/class/net"
	}
	return sysClassNet
}

// ListNetworkInterfaces enumerates entries under /sys/class/net (or its
// /mnt/sys rebase), keeping only those with a device symlink, and reads
// each one's MAC from its address file. Switch port/chassis descriptors
// are left unset; no code in the agent fills them in.
func ListNetworkInterfaces() ([]NetworkInterface, error) {
	root := netRoot()

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var nics []NetworkInterface

	for _, e := range entries {
		ifacePath := filepath.Join(root, e.Name())

		if _, err := os.Lstat(filepath.Join(ifacePath, "device")); err != nil {
			continue // no backing device node
		}

		addrBytes, err := os.ReadFile(filepath.Join(ifacePath, "address"))
		if err != nil {
			continue
		}

		mac := strings.TrimSpace(string(addrBytes))
		if !isColonHexMAC(mac) {
			continue
		}

		nics = append(nics, NetworkInterface{
			Name:       e.Name(),
			MACAddress: mac,
		})
	}

	return nics, nil
}

func isColonHexMAC(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return false
	}
	for _, p := range parts {
		if len(p) != 2 {
			return false
		}
		for _, c := range p {
			if !isHexDigit(c) {
				return false
			}
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
