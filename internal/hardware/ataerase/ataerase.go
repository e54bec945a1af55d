// Package ataerase drives the ATA security feature set to irreversibly
// erase a disk. The hdparm -I output scan is a line-oriented tab scanner:
// walk lines looking for a header, then collect the indented lines that
// follow it.
package ataerase

import (
	"bufio"
	"strings"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/procexec"
)

// ErrNotAttempted is returned when hdparm reports the device has no ATA
// security feature set at all. Callers may try an alternate erase method;
// the generic manager has none, so it treats this as fatal instead.
var ErrNotAttempted = &ipaerrors.BlockDeviceErase{Reason: ipaerrors.EraseUnsupported}

// securityLines runs `hdparm -I <dev>` and returns the tab-indented lines
// following the "Security:" header.
func securityLines(r procexec.CommandRunner, dev string) ([]string, error) {
	out, _, err := r.Run([]string{"hdparm", "-I", dev})
	if err != nil {
		return nil, err
	}

	var lines []string
	inBlock := false

	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		line := scanner.Text()

		if strings.TrimSpace(line) == "Security:" {
			inBlock = true
			continue
		}

		if inBlock {
			if strings.HasPrefix(line, "\t") {
				lines = append(lines, strings.Join(strings.Fields(line), " "))
				continue
			}
			break
		}
	}

	return lines, scanner.Err()
}

func contains(lines []string, needle string) bool {
	for _, l := range lines {
		if l == needle {
			return true
		}
	}
	return false
}

// Erase drives the ATA secure-erase sequence:
//
//  1. hdparm -I <dev>, read the Security: block.
//  2. supported absent -> ErrNotAttempted.
//  3. enabled present -> BlockDeviceErase{already_has_password}.
//  4. "not frozen" absent -> BlockDeviceErase{frozen}.
//  5. --security-set-pass NULL, then --security-erase NULL, both exit 0.
//  6. re-read; "not enabled" absent -> BlockDeviceErase{unknown_post_state}.
func Erase(r procexec.CommandRunner, dev string) error {
	lines, err := securityLines(r, dev)
	if err != nil {
		return err
	}

	if !contains(lines, "supported") {
		return ErrNotAttempted
	}

	if contains(lines, "enabled") {
		return &ipaerrors.BlockDeviceErase{Device: dev, Reason: ipaerrors.EraseAlreadyHasPassword}
	}

	if !contains(lines, "not frozen") {
		return &ipaerrors.BlockDeviceErase{Device: dev, Reason: ipaerrors.EraseFrozen}
	}

	if _, _, err := r.Run([]string{"hdparm", "--user-master", "u", "--security-set-pass", "NULL", dev}); err != nil {
		return err
	}
	if _, _, err := r.Run([]string{"hdparm", "--user-master", "u", "--security-erase", "NULL", dev}); err != nil {
		return err
	}

	post, err := securityLines(r, dev)
	if err != nil {
		return err
	}
	if !contains(post, "not enabled") {
		return &ipaerrors.BlockDeviceErase{Device: dev, Reason: ipaerrors.EraseUnknownPostState}
	}

	return nil
}
