package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
)

func TestSelectWriterPicksVHDOnlyForVHDOVAPair(t *testing.T) {
	w := SelectWriter(t.TempDir(), nil, ipatypes.ImageInfo{DiskFormat: DiskFormatVHD, ContainerFormat: ContainerFormatOVA})
	_, ok := w.(*VHDWriter)
	assert.True(t, ok, "expected a VHDWriter for disk_format=vhd, container_format=ova")
}

func TestSelectWriterFallsBackToQemuForVHDWithoutOVAContainer(t *testing.T) {
	w := SelectWriter(t.TempDir(), nil, ipatypes.ImageInfo{DiskFormat: DiskFormatVHD, ContainerFormat: "bare"})
	_, ok := w.(*QemuWriter)
	assert.True(t, ok, "vhd without an ova container should still use the qemu-img writer")
}

func TestSelectWriterFallsBackToQemuForUnsetDiskFormat(t *testing.T) {
	w := SelectWriter(t.TempDir(), nil, ipatypes.ImageInfo{})
	_, ok := w.(*QemuWriter)
	assert.True(t, ok)
}

func TestSelectWriterUsesQemuForQcow2(t *testing.T) {
	w := SelectWriter(t.TempDir(), nil, ipatypes.ImageInfo{DiskFormat: DiskFormatQemu})
	_, ok := w.(*QemuWriter)
	assert.True(t, ok)
}
