package agent

import (
	"errors"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/procexec"
)

// RunImage invokes the reboot shell step. On success the process is
// expected to terminate via the reboot itself; a returned error means
// the reboot command could not even be issued.
func RunImage(r procexec.CommandRunner) error {
	_, _, err := r.Run([]string{"reboot"})
	if err == nil {
		return nil
	}

	var exec *ipaerrors.CommandExecution
	if errors.As(err, &exec) {
		return &ipaerrors.SystemReboot{Cause: err}
	}
	return err
}
