package imaging

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"

	"github.com/supermari0/ironic-python-agent/internal/hardware/inventory"
	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
)

// ConfigDriveMaxBytes is the size cap on a decoded config-drive payload.
const ConfigDriveMaxBytes = 64 * 1024 * 1024

// DecodeConfigDrive base64-decodes and gzip-decompresses payload, writing
// the result to <tmpDir>/configdrive. If the resulting file exceeds
// ConfigDriveMaxBytes, it raises ConfigDriveTooLarge before the caller
// observes the file (the file is removed first). The returned cleanup
// always removes the temp file and is safe to call more than once.
func DecodeConfigDrive(tmpDir, payload string) (path string, cleanup func(), err error) {
	path = filepath.Join(tmpDir, "configdrive")

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", func() {}, err
	}

	if free, ferr := inventory.FreeBytes(tmpDir); ferr == nil && free < uint64(len(raw)) {
		return "", func() {}, &ipaerrors.ConfigDriveTooLarge{Path: path, Size: int64(len(raw))}
	}

	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", func() {}, err
	}
	defer gz.Close()

	f, err := os.Create(path)
	if err != nil {
		return "", func() {}, err
	}

	removed := false
	cleanup = func() {
		if removed {
			return
		}
		removed = true
		f.Close()
		os.Remove(path)
	}

	n, err := io.Copy(f, io.LimitReader(gz, ConfigDriveMaxBytes+1))
	if err != nil {
		cleanup()
		return "", func() {}, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, err
	}

	if n > ConfigDriveMaxBytes {
		size := n
		cleanup()
		return "", func() {}, &ipaerrors.ConfigDriveTooLarge{Path: path, Size: size}
	}

	return path, cleanup, nil
}
