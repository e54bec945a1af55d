package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/procexec"
)

// ListBlockDevices runs `lsblk -PbdioKNAME,MODEL,SIZE,ROTA,TYPE` and parses
// its KEY="value" output, keeping only TYPE=disk rows. Every kept row must
// carry KNAME, MODEL, SIZE, and ROTA, or the whole call fails: a partially
// described disk isn't safe to hand to an installer.
func ListBlockDevices(r procexec.CommandRunner) ([]BlockDevice, error) {
	out, _, err := r.Run([]string{"lsblk", "-PbdioKNAME,MODEL,SIZE,ROTA,TYPE"})
	if err != nil {
		return nil, err
	}

	var devices []BlockDevice

	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := parseShellWords(line)
		if fields["TYPE"] != "disk" {
			continue
		}

		for _, key := range []string{"KNAME", "MODEL", "SIZE", "ROTA"} {
			if _, ok := fields[key]; !ok {
				return nil, &ipaerrors.BlockDevice{
					Detail: fmt.Sprintf("lsblk row missing %v: %v", key, line),
				}
			}
		}

		size, err := strconv.ParseUint(fields["SIZE"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("lsblk SIZE %q: %w", fields["SIZE"], err)
		}

		devices = append(devices, BlockDevice{
			Name:       "/dev/" + fields["KNAME"],
			Model:      fields["MODEL"],
			SizeBytes:  size,
			Rotational: fields["ROTA"] == "1",
		})
	}

	return devices, nil
}

// parseShellWords splits a line of KEY="value" KEY="value" ... pairs the
// way a POSIX shell would word-split it, honoring double-quoted values that
// may themselves be empty.
func parseShellWords(line string) map[string]string {
	fields := map[string]string{}

	i := 0
	for i < len(line) {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if i >= len(line) {
			break
		}

		eq := strings.IndexByte(line[i:], '=')
		if eq < 0 {
			break
		}
		key := line[i : i+eq]
		i += eq + 1

		if i >= len(line) || line[i] != '"' {
			break
		}
		i++ // skip opening quote

		start := i
		for i < len(line) && line[i] != '"' {
			i++
		}
		value := line[start:i]
		if i < len(line) {
			i++ // skip closing quote
		}

		fields[key] = value
	}

	return fields
}
