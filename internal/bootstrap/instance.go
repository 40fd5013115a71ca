package bootstrap

// CreateInstance creates the API instance. With diagnostics on, the
// validation layer must be installed and the debug messenger descriptor is
// chained into the request.
func (b *Bootstrapper) CreateInstance(appName string, diagnostics bool) (Instance, error) {
	defer b.timed("createInstance")()

	options := InstanceOptions{
		ApplicationName: appName,
		EngineName:      b.options.EngineName,
	}

	var layers []string
	if diagnostics {
		available, err := b.loader.AvailableLayers()
		if err != nil {
			return nil, fail(ErrUnavailableLayer, err, "createinstance: enumerate layers")
		}

		for _, layer := range validationLayers {
			_, hasLayer := available[layer]
			if !hasLayer {
				return nil, fail(ErrUnavailableLayer, nil, "createinstance: layer %s not available- install LunarG Vulkan SDK", layer)
			}
			layers = append(layers, layer)
		}
	}

	extensions, err := b.loader.AvailableExtensions()
	if err != nil {
		return nil, fail(ErrInstanceCreationFailed, err, "createinstance: enumerate extensions")
	}

	for _, ext := range b.options.WindowExtensions {
		_, hasExt := extensions[ext]
		if !hasExt {
			return nil, fail(ErrInstanceCreationFailed, nil, "createinstance: missing window extension %s", ext)
		}
		options.ExtensionNames = append(options.ExtensionNames, ext)
	}

	if diagnostics {
		options.ExtensionNames = append(options.ExtensionNames, DebugUtilsExtension)
		options.LayerNames = layers

		diagnosticsOptions := b.diagnosticsOptions()
		options.Diagnostics = &diagnosticsOptions
	}

	// Required to see MoltenVK and other portability drivers at all.
	_, enumerationSupported := extensions[PortabilityEnumerationExtension]
	if enumerationSupported {
		options.ExtensionNames = append(options.ExtensionNames, PortabilityEnumerationExtension)
		options.EnumeratePortability = true
	}

	instance, err := b.loader.CreateInstance(options)
	if err != nil {
		return nil, fail(ErrInstanceCreationFailed, err, "createinstance")
	}

	b.instance = instance
	b.diagnostics = diagnostics
	b.acquired("instance", instance.Destroy)

	b.logger.WithField("extensions", options.ExtensionNames).
		WithField("layers", options.LayerNames).
		Info("instance created")
	return instance, nil
}

// RegisterDiagnostics attaches the debug messenger. It does nothing when
// the instance was created without diagnostics.
func (b *Bootstrapper) RegisterDiagnostics(instance Instance) (Messenger, error) {
	if !b.diagnostics {
		return nil, nil
	}
	defer b.timed("setupDebugMessenger")()

	extension, ok := instance.Diagnostics().Get()
	if !ok {
		return nil, fail(ErrDiagnosticsSetupFailed, nil, "setupdebugmessenger: %s entry points not present", DebugUtilsExtension)
	}

	messenger, err := extension.CreateMessenger(b.diagnosticsOptions())
	if err != nil {
		return nil, fail(ErrDiagnosticsSetupFailed, err, "setupdebugmessenger")
	}

	b.messenger = messenger
	b.acquired("debug messenger", messenger.Destroy)
	return messenger, nil
}
