// Package agent holds per-process agent state that survives across
// command invocations but is never persisted to disk: the agent's
// cached_image_id, guarded by a sync.Mutex.
package agent

import (
	"sync"

	"github.com/supermari0/ironic-python-agent/internal/hardware"
	"github.com/supermari0/ironic-python-agent/internal/ipaerrors"
	"github.com/supermari0/ironic-python-agent/internal/ipatypes"
)

// ImageCache tracks the most recently written image's ID so a repeat
// cache_image call for the same image can skip rewriting it. Multiple
// command workers may invoke it concurrently, so access is mutex-guarded.
type ImageCache struct {
	mu            sync.Mutex
	cachedImageID string
}

func NewImageCache() *ImageCache { return &ImageCache{} }

// CachedImageID returns the ID of the last image successfully written.
func (c *ImageCache) CachedImageID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cachedImageID
}

// CacheImage writes info to the elected manager's OS install device unless
// info.ID already matches the cache and force is false, in which case the
// existing on-disk state is assumed intact and no write occurs.
func (c *ImageCache) CacheImage(mgr hardware.Manager, info ipatypes.ImageInfo, force bool) error {
	if err := info.Validate(); err != nil {
		return &ipaerrors.InvalidCommandParams{Detail: err.Error()}
	}

	c.mu.Lock()
	skip := !force && c.cachedImageID == info.ID
	c.mu.Unlock()
	if skip {
		return nil
	}

	device, ok, err := mgr.GetOSInstallDevice()
	if err != nil {
		return err
	}
	if !ok {
		return &ipaerrors.InvalidCommandParams{Detail: "no os install device found"}
	}

	writer := mgr.GetImageManager(info)
	if err := writer.WriteImage(info, device.Name); err != nil {
		return err
	}

	c.mu.Lock()
	c.cachedImageID = info.ID
	c.mu.Unlock()
	return nil
}

// PrepareImage writes info (subject to the same cache rule as CacheImage)
// and, when configDrive is non-empty, additionally writes the config
// drive to the same device.
func (c *ImageCache) PrepareImage(mgr hardware.Manager, info ipatypes.ImageInfo, configDrive string) error {
	if err := c.CacheImage(mgr, info, false); err != nil {
		return err
	}

	if configDrive == "" {
		return nil
	}

	device, ok, err := mgr.GetOSInstallDevice()
	if err != nil {
		return err
	}
	if !ok {
		return &ipaerrors.InvalidCommandParams{Detail: "no os install device found"}
	}

	writer := mgr.GetImageManager(info)
	return writer.WriteConfigDrive(device.Name, configDrive)
}
