package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermari0/ironic-python-agent/internal/hardware"
	"github.com/supermari0/ironic-python-agent/internal/hardware/inventory"
	"github.com/supermari0/ironic-python-agent/internal/imaging"
	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
)

type fakeWriter struct {
	writeImageCalls  int
	writeConfigCalls int
	failImage        error
	failConfig       error
}

func (f *fakeWriter) WriteImage(info ipatypes.ImageInfo, device string) error {
	f.writeImageCalls++
	return f.failImage
}

func (f *fakeWriter) WriteConfigDrive(device, payload string) error {
	f.writeConfigCalls++
	return f.failConfig
}

type fakeManager struct {
	device inventory.BlockDevice
	hasDev bool
	writer *fakeWriter
}

func (f *fakeManager) EvaluateHardwareSupport() hardware.Rank                { return hardware.RankGeneric }
func (f *fakeManager) HardwareManagerVersion() string                        { return "1" }
func (f *fakeManager) ListHardware() (inventory.Snapshot, error)             { return inventory.Snapshot{}, nil }
func (f *fakeManager) EraseBlockDevice(inventory.BlockDevice) error          { return nil }
func (f *fakeManager) EraseDevices(ipatypes.Node, []ipatypes.Port) (interface{}, error) {
	return nil, nil
}
func (f *fakeManager) UpdateBIOS(ipatypes.Node, []ipatypes.Port) (interface{}, error) {
	return nil, nil
}
func (f *fakeManager) UpdateFirmware(ipatypes.Node, []ipatypes.Port) (interface{}, error) {
	return nil, nil
}
func (f *fakeManager) VerifyProperties(ipatypes.Node, []ipatypes.Port) (interface{}, error) {
	return nil, nil
}
func (f *fakeManager) GetOSInstallDevice() (inventory.BlockDevice, bool, error) {
	return f.device, f.hasDev, nil
}
func (f *fakeManager) GetDecommissionSteps() []ipatypes.DecommissionStep { return nil }
func (f *fakeManager) VerifyHardware(ipatypes.Properties, []ipatypes.Port, map[string]interface{}) error {
	return nil
}
func (f *fakeManager) GetImageManager(ipatypes.ImageInfo) imaging.Writer { return f.writer }

var _ hardware.Manager = (*fakeManager)(nil)

func validInfo(id string) ipatypes.ImageInfo {
	return ipatypes.ImageInfo{ID: id, URLs: []string{"http://x"}, Checksum: "abc"}
}

func TestCacheImageWritesOnFirstCall(t *testing.T) {
	w := &fakeWriter{}
	mgr := &fakeManager{device: inventory.BlockDevice{Name: "/dev/sda"}, hasDev: true, writer: w}
	c := NewImageCache()

	err := c.CacheImage(mgr, validInfo("i1"), false)
	require.NoError(t, err)
	assert.Equal(t, 1, w.writeImageCalls)
	assert.Equal(t, "i1", c.CachedImageID())
}

func TestCacheImageSkipsWhenAlreadyCached(t *testing.T) {
	w := &fakeWriter{}
	mgr := &fakeManager{device: inventory.BlockDevice{Name: "/dev/sda"}, hasDev: true, writer: w}
	c := NewImageCache()

	require.NoError(t, c.CacheImage(mgr, validInfo("i1"), false))
	require.NoError(t, c.CacheImage(mgr, validInfo("i1"), false))
	assert.Equal(t, 1, w.writeImageCalls)
}

func TestCacheImageForceRewrites(t *testing.T) {
	w := &fakeWriter{}
	mgr := &fakeManager{device: inventory.BlockDevice{Name: "/dev/sda"}, hasDev: true, writer: w}
	c := NewImageCache()

	require.NoError(t, c.CacheImage(mgr, validInfo("i1"), false))
	require.NoError(t, c.CacheImage(mgr, validInfo("i1"), true))
	assert.Equal(t, 2, w.writeImageCalls)
}

func TestPrepareImageWritesConfigDriveWhenSupplied(t *testing.T) {
	w := &fakeWriter{}
	mgr := &fakeManager{device: inventory.BlockDevice{Name: "/dev/sda"}, hasDev: true, writer: w}
	c := NewImageCache()

	err := c.PrepareImage(mgr, validInfo("i1"), "<payload>")
	require.NoError(t, err)
	assert.Equal(t, 1, w.writeImageCalls)
	assert.Equal(t, 1, w.writeConfigCalls)
}

func TestPrepareImageSkipsConfigDriveWhenEmpty(t *testing.T) {
	w := &fakeWriter{}
	mgr := &fakeManager{device: inventory.BlockDevice{Name: "/dev/sda"}, hasDev: true, writer: w}
	c := NewImageCache()

	require.NoError(t, c.PrepareImage(mgr, validInfo("i1"), ""))
	assert.Equal(t, 0, w.writeConfigCalls)
}
