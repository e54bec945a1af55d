package imaging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
	"github.com/supermari0/ironic-python-agent/internal/procexec"
)

// VHDWriter handles OVA-packaged VHD chains: download, untar, chain-link
// with vhd-util, and convert the leaf to raw on the target device.
type VHDWriter struct {
	tmpDir string
	runner procexec.CommandRunner
}

func NewVHDWriter(tmpDir string, r procexec.CommandRunner) *VHDWriter {
	return &VHDWriter{tmpDir: tmpDir, runner: r}
}

func (w *VHDWriter) WriteImage(info ipatypes.ImageInfo, device string) error {
	path, cleanup, err := DownloadToFile(w.tmpDir, info)
	if err != nil {
		return err
	}
	defer cleanup()

	tarDir := path + ".tardir"
	if err := os.MkdirAll(tarDir, 0755); err != nil {
		return err
	}
	defer os.RemoveAll(tarDir)

	if _, _, err := w.runner.Run([]string{"tar", "-xSf", path, "-C", tarDir}); err != nil {
		var exec *ipaerrors.CommandExecution
		if errors.As(err, &exec) {
			return &ipaerrors.ImageFormat{Detail: fmt.Sprintf("untar %v: %v", path, exec.Stderr)}
		}
		return err
	}

	restore, err := chdir(tarDir)
	if err != nil {
		return err
	}
	defer restore()

	vhds, err := enumerateVHDs(".")
	if err != nil {
		return err
	}

	// vhds[0] is the leaf; chain-link leaf->base in reverse, each child
	// pointing at its parent.
	for i := 0; i < len(vhds)-1; i++ {
		child, parent := vhds[i], vhds[i+1]
		if _, _, err := w.runner.Run([]string{"vhd-util", "modify", "-n", child, "-p", parent}); err != nil {
			var exec *ipaerrors.CommandExecution
			if errors.As(err, &exec) {
				return &ipaerrors.ImageFormat{Detail: fmt.Sprintf("chain-link %v -> %v: %v", child, parent, exec.Stderr)}
			}
			return err
		}
	}

	leaf := vhds[0]
	if _, _, err := w.runner.Run([]string{"vhd-util", "vhd2raw", "-d", "-b", "65536", leaf, device}); err != nil {
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

func (w *VHDWriter) WriteConfigDrive(device, payload string) error {
	return writeConfigDriveShellStep(w.tmpDir, w.runner, device, payload, func(location, device string) []string {
		return []string{"dd", "if=" + location, "of=" + device}
	})
}

// enumerateVHDs applies the VHD chain discovery rule: a single image.vhd
// wins outright; otherwise collect 0.vhd, 1.vhd, ... consecutively until
// the next integer file is missing. An empty result is ImageFormat{no_vhds}.
func enumerateVHDs(dir string) ([]string, error) {
	single := filepath.Join(dir, "image.vhd")
	if fileExists(single) {
		return []string{"image.vhd"}, nil
	}

	var vhds []string
	for i := 0; ; i++ {
		name := fmt.Sprintf("%d.vhd", i)
		if !fileExists(filepath.Join(dir, name)) {
			break
		}
		vhds = append(vhds, name)
	}

	if len(vhds) == 0 {
		return nil, &ipaerrors.ImageFormat{Detail: "no_vhds"}
	}

	return vhds, nil
}

// chdir enters dir and returns a function that restores the previous
// working directory, on all exits, success or failure.
func chdir(dir string) (func(), error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(dir); err != nil {
		return nil, err
	}
	return func() {
		os.Chdir(prev)
	}, nil
}
