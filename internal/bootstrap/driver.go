package bootstrap

import "github.com/google/uuid"

// Well-known layer and extension names. They are spelled out here so the
// bootstrap logic stays independent of any cgo binding.
const (
	ValidationLayer                 = "VK_LAYER_KHRONOS_validation"
	DebugUtilsExtension             = "VK_EXT_debug_utils"
	PortabilityEnumerationExtension = "VK_KHR_portability_enumeration"
	PortabilitySubsetExtension      = "VK_KHR_portability_subset"
)

var validationLayers = []string{ValidationLayer}

type QueueFlags uint32

const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

// Satisfies reports whether every bit of req is set in f.
func (f QueueFlags) Satisfies(req QueueFlags) bool {
	return f&req == req
}

func (f QueueFlags) String() string {
	if f == 0 {
		return "None"
	}
	names := []string{"Graphics", "Compute", "Transfer", "SparseBinding"}
	var out string
	for i, name := range names {
		if f&(1<<i) == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += name
	}
	return out
}

type QueueFamily struct {
	Flags      QueueFlags
	QueueCount int
}

type DeviceProperties struct {
	Name      string
	Type      string
	VendorID  uint32
	DeviceID  uint32
	CacheUUID uuid.UUID
}

type InstanceOptions struct {
	ApplicationName string
	EngineName      string

	ExtensionNames []string
	LayerNames     []string

	// EnumeratePortability sets the portability-enumeration instance flag.
	EnumeratePortability bool

	// Diagnostics, when non-nil, is chained into the creation request so
	// messages raised while the instance is being created are captured too.
	Diagnostics *DiagnosticsOptions
}

type DeviceOptions struct {
	QueueFamilyIndex int
	QueuePriorities  []float32
	ExtensionNames   []string
}

// Loader is the global entry point of the graphics API.
type Loader interface {
	AvailableLayers() (map[string]struct{}, error)
	AvailableExtensions() (map[string]struct{}, error)
	CreateInstance(options InstanceOptions) (Instance, error)
}

type Instance interface {
	PhysicalDevices() ([]PhysicalDevice, error)
	// Diagnostics looks up the debug-utils entry points, which are only
	// resolvable when the extension was enabled on this instance.
	Diagnostics() Extension[DiagnosticsExtension]
	Destroy()
}

type PhysicalDevice interface {
	Properties() (DeviceProperties, error)
	QueueFamilies() ([]QueueFamily, error)
	Extensions() (map[string]struct{}, error)
	CreateDevice(options DeviceOptions) (Device, error)
}

type Device interface {
	Queue(familyIndex, queueIndex int) Queue
	Destroy()
}

type Queue interface {
	FamilyIndex() int
}

type DiagnosticsExtension interface {
	CreateMessenger(options DiagnosticsOptions) (Messenger, error)
}

type Messenger interface {
	Destroy()
}

// Extension is either a resolved extension entry point or nothing.
type Extension[T any] struct {
	value   T
	present bool
}

func Present[T any](value T) Extension[T] {
	return Extension[T]{value: value, present: true}
}

func Absent[T any]() Extension[T] {
	return Extension[T]{}
}

func (e Extension[T]) Get() (T, bool) {
	return e.value, e.present
}
