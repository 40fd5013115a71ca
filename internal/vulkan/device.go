package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"

	"github.com/vkngwrapper/bootstrap/internal/bootstrap"
)

var queueFlags = []struct {
	vk   core1_0.QueueFlags
	flag bootstrap.QueueFlags
}{
	{core1_0.QueueGraphics, bootstrap.QueueGraphics},
	{core1_0.QueueCompute, bootstrap.QueueCompute},
	{core1_0.QueueTransfer, bootstrap.QueueTransfer},
	{core1_0.QueueSparseBinding, bootstrap.QueueSparseBinding},
}

type PhysicalDevice struct {
	instanceDriver core1_0.CoreInstanceDriver
	device         core1_0.PhysicalDevice
}

var _ bootstrap.PhysicalDevice = (*PhysicalDevice)(nil)

func (p *PhysicalDevice) Properties() (bootstrap.DeviceProperties, error) {
	properties, err := p.instanceDriver.GetPhysicalDeviceProperties(p.device)
	if err != nil {
		return bootstrap.DeviceProperties{}, err
	}

	return bootstrap.DeviceProperties{
		Name:      properties.DriverName,
		Type:      properties.DriverType.String(),
		VendorID:  properties.VendorID,
		DeviceID:  properties.DeviceID,
		CacheUUID: properties.PipelineCacheUUID,
	}, nil
}

func (p *PhysicalDevice) QueueFamilies() ([]bootstrap.QueueFamily, error) {
	queueFamilies := p.instanceDriver.GetPhysicalDeviceQueueFamilyProperties(p.device)

	families := make([]bootstrap.QueueFamily, 0, len(queueFamilies))
	for _, queueFamily := range queueFamilies {
		var flags bootstrap.QueueFlags
		for _, mapping := range queueFlags {
			if (queueFamily.QueueFlags & mapping.vk) != 0 {
				flags |= mapping.flag
			}
		}

		families = append(families, bootstrap.QueueFamily{
			Flags:      flags,
			QueueCount: int(queueFamily.QueueCount),
		})
	}
	return families, nil
}

func (p *PhysicalDevice) Extensions() (map[string]struct{}, error) {
	extensions, _, err := p.instanceDriver.EnumerateDeviceExtensionProperties(p.device)
	if err != nil {
		return nil, err
	}
	return names(extensions), nil
}

func (p *PhysicalDevice) CreateDevice(options bootstrap.DeviceOptions) (bootstrap.Device, error) {
	device, _, err := p.instanceDriver.CreateDevice(p.device, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: []core1_0.DeviceQueueCreateInfo{
			{
				QueueFamilyIndex: options.QueueFamilyIndex,
				QueuePriorities:  options.QueuePriorities,
			},
		},
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: options.ExtensionNames,
	})
	if err != nil {
		return nil, err
	}

	deviceDriver, err := p.instanceDriver.BuildDeviceDriver(device)
	if err != nil {
		return nil, errors.Wrap(err, "vulkan device driver")
	}

	return &Device{driver: deviceDriver}, nil
}

type Device struct {
	driver core1_0.CoreDeviceDriver
}

func (d *Device) Queue(familyIndex, queueIndex int) bootstrap.Queue {
	return &Queue{
		queue:       d.driver.GetQueue(familyIndex, queueIndex),
		familyIndex: familyIndex,
	}
}

func (d *Device) Destroy() {
	d.driver.DestroyDevice(nil)
}

type Queue struct {
	queue       core1_0.Queue
	familyIndex int
}

func (q *Queue) FamilyIndex() int { return q.familyIndex }
