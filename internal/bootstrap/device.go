package bootstrap

import "fmt"

// FindQueueFamily returns the index of the first queue family on device
// whose flags satisfy req.
func FindQueueFamily(device PhysicalDevice, req QueueFlags) (index int, found bool, err error) {
	families, err := device.QueueFamilies()
	if err != nil {
		return 0, false, err
	}

	for queueFamilyIdx, queueFamily := range families {
		if queueFamily.Flags.Satisfies(req) {
			return queueFamilyIdx, true, nil
		}
	}

	return 0, false, nil
}

// SelectDevice picks the first physical device, in enumeration order, that
// has a queue family satisfying req. Devices after the match are not
// queried. Nothing is scored: an integrated GPU listed first wins over a
// discrete one listed second.
func (b *Bootstrapper) SelectDevice(instance Instance, req QueueFlags) (Candidate, error) {
	defer b.timed("pickPhysicalDevice")()

	physicalDevices, err := instance.PhysicalDevices()
	if err != nil {
		return Candidate{}, fail(ErrNoDevicesFound, err, "pickphysicaldevice: enumerate")
	}

	if len(physicalDevices) == 0 {
		return Candidate{}, fail(ErrNoDevicesFound, nil, "pickphysicaldevice")
	}

	for deviceIdx, device := range physicalDevices {
		queueFamilyIdx, found, err := FindQueueFamily(device, req)
		if err != nil {
			b.logger.WithError(err).WithField("device", deviceIdx).Warn("could not get physical device queue families")
			continue
		}

		if !found {
			continue
		}

		b.candidate = Candidate{
			Device:           device,
			DeviceIndex:      deviceIdx,
			QueueFamilyIndex: queueFamilyIdx,
		}

		b.properties, err = device.Properties()
		if err != nil {
			b.logger.WithError(err).WithField("device", deviceIdx).Warn("could not get physical device properties")
		}

		b.logger.WithField("device", b.properties.Name).
			WithField("type", b.properties.Type).
			WithField("vendorID", fmt.Sprintf("%#04x", b.properties.VendorID)).
			WithField("deviceID", fmt.Sprintf("%#04x", b.properties.DeviceID)).
			WithField("cacheUUID", b.properties.CacheUUID).
			WithField("queueFamily", queueFamilyIdx).
			Info("physical device selected")
		return b.candidate, nil
	}

	return Candidate{}, fail(ErrNoSuitableDevice, nil, "pickphysicaldevice: %d devices, none with %s queues", len(physicalDevices), req)
}

// CreateLogicalDevice creates a device with a single queue from the
// candidate's queue family and retrieves queue 0 of that family.
func (b *Bootstrapper) CreateLogicalDevice(candidate Candidate) (Device, Queue, error) {
	defer b.timed("createLogicalDevice")()

	var extensionNames []string

	// Makes this compatible with vulkan portability, necessary to run on mobile & mac
	extensions, err := candidate.Device.Extensions()
	if err != nil {
		return nil, nil, fail(ErrDeviceCreationFailed, err, "createlogicaldevice: enumerate extensions")
	}

	_, supported := extensions[PortabilitySubsetExtension]
	if supported {
		extensionNames = append(extensionNames, PortabilitySubsetExtension)
	}

	device, err := candidate.Device.CreateDevice(DeviceOptions{
		QueueFamilyIndex: candidate.QueueFamilyIndex,
		QueuePriorities:  []float32{1.0},
		ExtensionNames:   extensionNames,
	})
	if err != nil {
		return nil, nil, fail(ErrDeviceCreationFailed, err, "createlogicaldevice")
	}

	b.device = device
	b.acquired("logical device", device.Destroy)

	b.queue = device.Queue(candidate.QueueFamilyIndex, 0)
	return device, b.queue, nil
}
