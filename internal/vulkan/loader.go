// Package vulkan implements the bootstrap driver interfaces on vkngwrapper.
package vulkan

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"

	"github.com/vkngwrapper/bootstrap/internal/bootstrap"
)

type Loader struct {
	globalDriver core1_0.GlobalDriver
}

var _ bootstrap.Loader = (*Loader)(nil)

// NewLoader builds the global driver from a vkGetInstanceProcAddr pointer,
// such as the one SDL hands out after loading the Vulkan library.
func NewLoader(procAddr unsafe.Pointer) (*Loader, error) {
	if procAddr == nil {
		return nil, errors.New("vulkan loader: vkGetInstanceProcAddr is nil")
	}

	globalDriver, err := core.CreateDriverFromProcAddr(procAddr)
	if err != nil {
		return nil, errors.Wrap(err, "vulkan loader")
	}

	return &Loader{globalDriver: globalDriver}, nil
}

func (l *Loader) AvailableLayers() (map[string]struct{}, error) {
	layers, _, err := l.globalDriver.AvailableLayers()
	if err != nil {
		return nil, err
	}
	return names(layers), nil
}

func (l *Loader) AvailableExtensions() (map[string]struct{}, error) {
	extensions, _, err := l.globalDriver.AvailableExtensions()
	if err != nil {
		return nil, err
	}
	return names(extensions), nil
}

func (l *Loader) CreateInstance(options bootstrap.InstanceOptions) (bootstrap.Instance, error) {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:       options.ApplicationName,
		ApplicationVersion:    common.CreateVersion(1, 0, 0),
		EngineName:            options.EngineName,
		EngineVersion:         common.CreateVersion(1, 0, 0),
		APIVersion:            common.Vulkan1_0,
		EnabledExtensionNames: options.ExtensionNames,
		EnabledLayerNames:     options.LayerNames,
	}

	if options.EnumeratePortability {
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if options.Diagnostics != nil {
		instanceOptions.Next = messengerCreateInfo(*options.Diagnostics)
	}

	instance, _, err := l.globalDriver.CreateInstance(nil, instanceOptions)
	if err != nil {
		return nil, err
	}

	instanceDriver, err := l.globalDriver.BuildInstanceDriver(instance)
	if err != nil {
		return nil, errors.Wrap(err, "vulkan instance driver")
	}

	return &Instance{
		driver:     instanceDriver,
		debugUtils: ext_debug_utils.CreateExtensionDriverFromCoreDriver,
	}, nil
}

func names[V any](properties map[string]V) map[string]struct{} {
	out := make(map[string]struct{}, len(properties))
	for name := range properties {
		out[name] = struct{}{}
	}
	return out
}
