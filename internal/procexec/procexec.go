// Package procexec runs external commands with an explicit argv vector
// and an exit-code whitelist: build *exec.Cmd with an explicit Path/Args
// (no shell expansion), capture stdout/stderr, and distinguish a spawn
// failure from a nonzero exit.
package procexec

import (
	"bytes"
	"os/exec"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
)

// CommandRunner is the narrow interface consumers (ATA erase, image
// writers, inventory) depend on, so tests can substitute a fake instead of
// shelling out to real lsblk/hdparm/qemu-img binaries.
type CommandRunner interface {
	Run(argv []string, okExitCodes ...int) (stdout, stderr []byte, err error)
}

// Runner executes external commands on behalf of the hardware managers and
// image writers.
type Runner struct {
	// RunAsRoot is informational only on POSIX systems where the agent
	// already runs as root inside the ramdisk; kept so callers can record
	// that intent explicitly.
	RunAsRoot bool
}

func New() *Runner {
	return &Runner{RunAsRoot: true}
}

var _ CommandRunner = (*Runner)(nil)

// Run executes argv and requires the exit code to be in okExitCodes (exit 0
// is always accepted even if okExitCodes is empty). It returns captured
// stdout/stderr on success and a *ipaerrors.CommandExecution on failure,
// whether that failure is a spawn error or a code outside the whitelist.
// An empty argv is rejected with *ipaerrors.InvalidCommandParams.
func (r *Runner) Run(argv []string, okExitCodes ...int) (stdout, stderr []byte, err error) {
	if len(argv) == 0 {
		return nil, nil, &ipaerrors.InvalidCommandParams{Detail: "empty command"}
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, nil, &ipaerrors.CommandExecution{
			Command:  argv,
			ExitCode: -1,
			Stderr:   err.Error(),
		}
	}

	var bufout, buferr bytes.Buffer

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Stdout: &bufout,
		Stderr: &buferr,
	}

	runErr := cmd.Run()

	exitCode := 0
	if runErr != nil {
		exitCode = -1
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return nil, nil, &ipaerrors.CommandExecution{
				Command:  argv,
				ExitCode: exitCode,
				Stdout:   bufout.String(),
				Stderr:   buferr.String(),
			}
		}
	}

	if !codeAllowed(exitCode, okExitCodes) {
		return bufout.Bytes(), buferr.Bytes(), &ipaerrors.CommandExecution{
			Command:  argv,
			ExitCode: exitCode,
			Stdout:   bufout.String(),
			Stderr:   buferr.String(),
		}
	}

	return bufout.Bytes(), buferr.Bytes(), nil
}

func codeAllowed(code int, ok []int) bool {
	if code == 0 {
		return true
	}
	for _, c := range ok {
		if c == code {
			return true
		}
	}
	return false
}
