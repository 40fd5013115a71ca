package bootstrap_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/vkngwrapper/bootstrap/internal/bootstrap"
)

func TestLogDiagnosticsNeverAborts(t *testing.T) {
	c := qt.New(t)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)
	callback := bootstrap.LogDiagnostics(logger)

	tests := []struct {
		severity bootstrap.Severity
		level    logrus.Level
	}{
		{bootstrap.SeverityVerbose, logrus.DebugLevel},
		{bootstrap.SeverityInfo, logrus.InfoLevel},
		{bootstrap.SeverityWarning, logrus.WarnLevel},
		{bootstrap.SeverityError, logrus.ErrorLevel},
	}

	for _, tt := range tests {
		hook.Reset()
		abort := callback(bootstrap.Message{
			Severity: tt.severity,
			Types:    bootstrap.TypeValidation,
			Text:     "vkCreateDevice: pCreateInfo->pQueueCreateInfos[0].queueFamilyIndex is invalid",
		})
		c.Check(abort, qt.IsFalse)

		entry := hook.LastEntry()
		c.Assert(entry, qt.Not(qt.IsNil))
		c.Check(entry.Level, qt.Equals, tt.level)
		c.Check(entry.Message, qt.Equals, "validation layer: vkCreateDevice: pCreateInfo->pQueueCreateInfos[0].queueFamilyIndex is invalid")
		c.Check(entry.Data["type"], qt.Equals, bootstrap.TypeValidation)
	}
}

func TestSeverityLogLevelMostSevereWins(t *testing.T) {
	c := qt.New(t)
	c.Check((bootstrap.SeverityInfo | bootstrap.SeverityError).LogLevel(), qt.Equals, logrus.ErrorLevel)
	c.Check(bootstrap.Severity(0).LogLevel(), qt.Equals, logrus.DebugLevel)
}

func TestParseSeverity(t *testing.T) {
	c := qt.New(t)

	severity, err := bootstrap.ParseSeverity("WARNING")
	c.Assert(err, qt.IsNil)
	c.Check(severity, qt.Equals, bootstrap.SeverityWarning)

	_, err = bootstrap.ParseSeverity("fatal")
	c.Check(err, qt.ErrorMatches, `unknown diagnostics severity "fatal"`)
}

func TestSeverityAtOrAbove(t *testing.T) {
	c := qt.New(t)
	c.Check(bootstrap.SeverityVerbose.AtOrAbove(), qt.Equals, bootstrap.SeverityVerbose|bootstrap.SeverityInfo|bootstrap.SeverityWarning|bootstrap.SeverityError)
	c.Check(bootstrap.SeverityWarning.AtOrAbove(), qt.Equals, bootstrap.SeverityWarning|bootstrap.SeverityError)
	c.Check(bootstrap.SeverityError.AtOrAbove(), qt.Equals, bootstrap.SeverityError)
	c.Check(bootstrap.SeverityWarning.AtOrAbove().String(), qt.Equals, "warning|error")
}

func TestDiagnosticsSeverityOption(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()
	logger, _ := test.NewNullLogger()
	b := bootstrap.New(loader, logger, bootstrap.Options{
		Diagnostics: true,
		MinSeverity: bootstrap.SeverityWarning,
	})

	instance, err := b.CreateInstance("Hello Triangle", true)
	c.Assert(err, qt.IsNil)
	_, err = b.RegisterDiagnostics(instance)
	c.Assert(err, qt.IsNil)

	c.Check(loader.created[0].Diagnostics.Severities, qt.Equals, bootstrap.SeverityWarning|bootstrap.SeverityError)
	c.Check(loader.instance.diagnostics.options[0].Severities, qt.Equals, bootstrap.SeverityWarning|bootstrap.SeverityError)
}

type countingPump struct {
	pumps   int
	closeAt int
}

func (p *countingPump) PumpEvents() bool {
	p.pumps++
	return p.pumps >= p.closeAt
}

func TestIdleLoopRunsUntilClose(t *testing.T) {
	c := qt.New(t)
	pump := &countingPump{closeAt: 5}
	bootstrap.IdleLoop(pump)
	c.Check(pump.pumps, qt.Equals, 5)
}
