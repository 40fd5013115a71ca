package bootstrap_test

import (
	"fmt"

	"github.com/vkngwrapper/bootstrap/internal/bootstrap"
)

// journal records destroy calls across fakes so ordering can be asserted.
type journal struct {
	destroyed []string
}

func (j *journal) destroy(name string) func() {
	return func() { j.destroyed = append(j.destroyed, name) }
}

type fakeLoader struct {
	journal *journal

	layers     map[string]struct{}
	extensions map[string]struct{}
	layersErr  error
	createErr  error

	instance *fakeInstance
	created  []bootstrap.InstanceOptions
}

func (l *fakeLoader) AvailableLayers() (map[string]struct{}, error) {
	return l.layers, l.layersErr
}

func (l *fakeLoader) AvailableExtensions() (map[string]struct{}, error) {
	return l.extensions, nil
}

func (l *fakeLoader) CreateInstance(options bootstrap.InstanceOptions) (bootstrap.Instance, error) {
	l.created = append(l.created, options)
	if l.createErr != nil {
		return nil, l.createErr
	}
	l.instance.journal = l.journal
	return l.instance, nil
}

type fakeInstance struct {
	journal *journal

	devices    []*fakePhysicalDevice
	devicesErr error

	diagnostics *fakeDiagnostics
}

func (i *fakeInstance) PhysicalDevices() ([]bootstrap.PhysicalDevice, error) {
	if i.devicesErr != nil {
		return nil, i.devicesErr
	}
	var out []bootstrap.PhysicalDevice
	for _, device := range i.devices {
		device.journal = i.journal
		out = append(out, device)
	}
	return out, nil
}

func (i *fakeInstance) Diagnostics() bootstrap.Extension[bootstrap.DiagnosticsExtension] {
	if i.diagnostics == nil {
		return bootstrap.Absent[bootstrap.DiagnosticsExtension]()
	}
	i.diagnostics.journal = i.journal
	return bootstrap.Present[bootstrap.DiagnosticsExtension](i.diagnostics)
}

func (i *fakeInstance) Destroy() {
	i.journal.destroy("instance")()
}

type fakeDiagnostics struct {
	journal   *journal
	createErr error
	options   []bootstrap.DiagnosticsOptions
}

func (d *fakeDiagnostics) CreateMessenger(options bootstrap.DiagnosticsOptions) (bootstrap.Messenger, error) {
	d.options = append(d.options, options)
	if d.createErr != nil {
		return nil, d.createErr
	}
	return fakeMessenger{d.journal}, nil
}

type fakeMessenger struct {
	journal *journal
}

func (m fakeMessenger) Destroy() {
	m.journal.destroy("debug messenger")()
}

type fakePhysicalDevice struct {
	journal *journal

	properties  bootstrap.DeviceProperties
	families    []bootstrap.QueueFamily
	familiesErr error
	extensions  map[string]struct{}
	createErr   error

	familyQueries int
	created       []bootstrap.DeviceOptions
}

func (p *fakePhysicalDevice) Properties() (bootstrap.DeviceProperties, error) {
	return p.properties, nil
}

func (p *fakePhysicalDevice) QueueFamilies() ([]bootstrap.QueueFamily, error) {
	p.familyQueries++
	return p.families, p.familiesErr
}

func (p *fakePhysicalDevice) Extensions() (map[string]struct{}, error) {
	return p.extensions, nil
}

func (p *fakePhysicalDevice) CreateDevice(options bootstrap.DeviceOptions) (bootstrap.Device, error) {
	p.created = append(p.created, options)
	if p.createErr != nil {
		return nil, p.createErr
	}
	return &fakeDevice{journal: p.journal}, nil
}

type fakeDevice struct {
	journal *journal
	queues  []string
}

func (d *fakeDevice) Queue(familyIndex, queueIndex int) bootstrap.Queue {
	d.queues = append(d.queues, fmt.Sprintf("%d/%d", familyIndex, queueIndex))
	return fakeQueue(familyIndex)
}

func (d *fakeDevice) Destroy() {
	d.journal.destroy("logical device")()
}

type fakeQueue int

func (q fakeQueue) FamilyIndex() int { return int(q) }

func set(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, name := range names {
		out[name] = struct{}{}
	}
	return out
}

func graphicsDevice(name string, families ...bootstrap.QueueFlags) *fakePhysicalDevice {
	device := &fakePhysicalDevice{
		properties: bootstrap.DeviceProperties{Name: name},
		extensions: set(),
	}
	for _, flags := range families {
		device.families = append(device.families, bootstrap.QueueFamily{Flags: flags, QueueCount: 1})
	}
	return device
}

// newLoader returns a loader whose instance exposes devices and has the
// validation layer and debug-utils extension installed.
func newLoader(devices ...*fakePhysicalDevice) *fakeLoader {
	j := &journal{}
	return &fakeLoader{
		journal:    j,
		layers:     set(bootstrap.ValidationLayer),
		extensions: set("VK_KHR_surface", "VK_KHR_xlib_surface", bootstrap.DebugUtilsExtension),
		instance: &fakeInstance{
			journal:     j,
			devices:     devices,
			diagnostics: &fakeDiagnostics{},
		},
	}
}
