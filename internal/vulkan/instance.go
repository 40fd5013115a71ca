package vulkan

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"

	"github.com/vkngwrapper/bootstrap/internal/bootstrap"
)

type Instance struct {
	driver     core1_0.CoreInstanceDriver
	debugUtils func(core1_0.CoreInstanceDriver) ext_debug_utils.ExtensionDriver
}

var _ bootstrap.Instance = (*Instance)(nil)

func (i *Instance) PhysicalDevices() ([]bootstrap.PhysicalDevice, error) {
	physicalDevices, _, err := i.driver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	devices := make([]bootstrap.PhysicalDevice, 0, len(physicalDevices))
	for _, device := range physicalDevices {
		devices = append(devices, &PhysicalDevice{instanceDriver: i.driver, device: device})
	}
	return devices, nil
}

// Diagnostics resolves the debug-utils entry points. vkngwrapper returns no
// driver when the extension is not active on the instance.
func (i *Instance) Diagnostics() bootstrap.Extension[bootstrap.DiagnosticsExtension] {
	debugDriver := i.debugUtils(i.driver)
	if debugDriver == nil {
		return bootstrap.Absent[bootstrap.DiagnosticsExtension]()
	}
	return bootstrap.Present[bootstrap.DiagnosticsExtension](&DebugUtils{driver: debugDriver})
}

func (i *Instance) Destroy() {
	i.driver.DestroyInstance(nil)
}
