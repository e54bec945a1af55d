package imaging

import (
	"errors"
	"os"

	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
	"github.com/supermari0/ironic-python-agent/internal/procexec"
)

// Writer writes an ImageInfo and, optionally, a config drive to a target
// block device. The hardware manager's GetImageManager picks one via
// SelectWriter, which looks at ImageInfo.DiskFormat and ContainerFormat.
type Writer interface {
	WriteImage(info ipatypes.ImageInfo, device string) error
	WriteConfigDrive(device, payload string) error
}

// DiskFormatQemu and DiskFormatVHD name the disk_format values SelectWriter
// recognizes; ContainerFormatOVA is the container_format that, together
// with DiskFormatVHD, selects the VHD writer. Every other combination
// (including an unset disk_format) uses the qemu-img writer.
const (
	DiskFormatQemu = "qcow2"
	DiskFormatVHD  = "vhd"

	ContainerFormatOVA = "ova"
)

// SelectWriter dispatches on info.DiskFormat: qcow2 uses the qemu-img
// writer; vhd with an OVA container uses the VHD-util writer; anything
// else falls back to qemu-img.
func SelectWriter(tmpDir string, r procexec.CommandRunner, info ipatypes.ImageInfo) Writer {
	if info.DiskFormat == DiskFormatVHD && info.ContainerFormat == ContainerFormatOVA {
		return NewVHDWriter(tmpDir, r)
	}
	return NewQemuWriter(tmpDir, r)
}

// writeConfigDriveShellStep is shared by every Writer: decode the
// base64+gzip payload to a temp file, then hand (location, device) to a
// shell step under an exit-0 contract.
func writeConfigDriveShellStep(tmpDir string, r procexec.CommandRunner, device, payload string, argv func(location, device string) []string) error {
	path, cleanup, err := DecodeConfigDrive(tmpDir, payload)
	if err != nil {
		return err
	}
	defer cleanup()

	_, _, err = r.Run(argv(path, device))
	if err != nil {
		var exec *ipaerrors.CommandExecution
		if errors.As(err, &exec) {
			return &ipaerrors.ConfigDriveWrite{
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

// fileExists is a small helper used by the VHD writer's chain enumeration.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
