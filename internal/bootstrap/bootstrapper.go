package bootstrap

import (
	"time"

	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"
)

type Options struct {
	ApplicationName string
	EngineName      string

	// Diagnostics enables the validation layer and the debug messenger.
	Diagnostics bool
	// MinSeverity is the least severe diagnostics message delivered.
	// Zero means SeverityVerbose.
	MinSeverity Severity
	// Callback receives diagnostics messages. Nil logs them.
	Callback Callback

	// Requirement is the queue capability the selected device must expose.
	// Zero means QueueGraphics.
	Requirement QueueFlags

	// WindowExtensions are the instance extensions the window system needs.
	WindowExtensions []string
}

// Candidate is a physical device paired with the queue family that
// satisfied the requirement.
type Candidate struct {
	Device           PhysicalDevice
	DeviceIndex      int
	QueueFamilyIndex int
}

type release struct {
	name    string
	destroy func()
}

// Bootstrapper owns the instance, the diagnostics messenger and the logical
// device, and destroys them in reverse creation order.
type Bootstrapper struct {
	loader  Loader
	logger  logrus.FieldLogger
	options Options
	now     func() time.Duration

	diagnostics bool

	instance   Instance
	messenger  Messenger
	candidate  Candidate
	properties DeviceProperties
	device     Device
	queue      Queue

	releases []release
}

func New(loader Loader, logger logrus.FieldLogger, options Options) *Bootstrapper {
	if options.MinSeverity == 0 {
		options.MinSeverity = SeverityVerbose
	}
	if options.Requirement == 0 {
		options.Requirement = QueueGraphics
	}
	if options.Callback == nil {
		options.Callback = LogDiagnostics(logger)
	}

	return &Bootstrapper{
		loader:  loader,
		logger:  logger,
		options: options,
		now:     hrtime.Now,
	}
}

func (b *Bootstrapper) Instance() Instance           { return b.instance }
func (b *Bootstrapper) Messenger() Messenger         { return b.messenger }
func (b *Bootstrapper) Selected() Candidate          { return b.candidate }
func (b *Bootstrapper) Properties() DeviceProperties { return b.properties }
func (b *Bootstrapper) Device() Device               { return b.device }
func (b *Bootstrapper) Queue() Queue                 { return b.queue }
func (b *Bootstrapper) DiagnosticsEnabled() bool     { return b.diagnostics }

func (b *Bootstrapper) acquired(name string, destroy func()) {
	b.releases = append(b.releases, release{name: name, destroy: destroy})
}

// timed logs how long a stage took once the returned func is called.
func (b *Bootstrapper) timed(stage string) func() {
	start := b.now()
	return func() {
		b.logger.WithFields(logrus.Fields{
			"stage":   stage,
			"elapsed": b.now() - start,
		}).Debug("stage complete")
	}
}

// Bootstrap runs the whole setup sequence. If any step fails, everything
// acquired so far is released before the error is returned, and Bootstrap
// may be called again. A bootstrapper that still holds handles must be
// closed first.
func (b *Bootstrapper) Bootstrap() (err error) {
	if len(b.releases) > 0 {
		return fail(ErrAlreadyBootstrapped, nil, "bootstrap: %d handles still held, Close first", len(b.releases))
	}

	defer func() {
		if err != nil {
			b.Close()
		}
	}()

	instance, err := b.CreateInstance(b.options.ApplicationName, b.options.Diagnostics)
	if err != nil {
		return err
	}

	_, err = b.RegisterDiagnostics(instance)
	if err != nil {
		return err
	}

	candidate, err := b.SelectDevice(instance, b.options.Requirement)
	if err != nil {
		return err
	}

	_, _, err = b.CreateLogicalDevice(candidate)
	return err
}

// Close destroys every handle acquired so far, most recent first. A
// second Close with nothing acquired in between does nothing.
func (b *Bootstrapper) Close() {
	for i := len(b.releases) - 1; i >= 0; i-- {
		b.logger.WithField("resource", b.releases[i].name).Debug("destroying")
		b.releases[i].destroy()
	}
	b.releases = nil

	b.queue = nil
	b.device = nil
	b.messenger = nil
	b.instance = nil
}

func (b *Bootstrapper) diagnosticsOptions() DiagnosticsOptions {
	return DiagnosticsOptions{
		Severities: b.options.MinSeverity.AtOrAbove(),
		Types:      TypeAll,
		Callback:   b.options.Callback,
	}
}
