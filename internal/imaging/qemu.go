package imaging

import (
	"errors"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
	"github.com/supermari0/ironic-python-agent/internal/procexec"
)

// QemuWriter downloads an image to a temp file and streams it to the
// target device with `qemu-img convert`. It is the default writer and the
// fallback for any disk_format other than a VHD/OVA pair.
type QemuWriter struct {
	tmpDir string
	runner procexec.CommandRunner
}

func NewQemuWriter(tmpDir string, r procexec.CommandRunner) *QemuWriter {
	return &QemuWriter{tmpDir: tmpDir, runner: r}
}

func (w *QemuWriter) WriteImage(info ipatypes.ImageInfo, device string) error {
	path, cleanup, err := DownloadToFile(w.tmpDir, info)
	if err != nil {
		return err
	}
	defer cleanup()

	srcFormat := info.DiskFormat
	if srcFormat == "" {
		srcFormat = "raw"
	}

	_, _, err = w.runner.Run([]string{
		"qemu-img", "convert", "-f", srcFormat, "-O", "raw", path, device,
	})
	if err != nil {
		var exec *ipaerrors.CommandExecution
		if errors.As(err, &exec) {
			return &ipaerrors.ImageWrite{
				Device:   device,
				ExitCode: exec.ExitCode,
				Stdout:   exec.Stdout,
				Stderr:   exec.Stderr,
			}
		}
		return err
	}

	return nil
}

func (w *QemuWriter) WriteConfigDrive(device, payload string) error {
	return writeConfigDriveShellStep(w.tmpDir, w.runner, device, payload, func(location, device string) []string {
		return []string{"dd", "if=" + location, "of=" + device}
	})
}
