package bootstrap

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

type Severity uint32

const (
	SeverityVerbose Severity = 1 << iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = map[Severity]string{
	SeverityVerbose: "verbose",
	SeverityInfo:    "info",
	SeverityWarning: "warning",
	SeverityError:   "error",
}

// ParseSeverity accepts a single severity name, case-insensitively.
func ParseSeverity(name string) (Severity, error) {
	for severity, candidate := range severityNames {
		if strings.EqualFold(name, candidate) {
			return severity, nil
		}
	}
	return 0, errors.Newf("unknown diagnostics severity %q", name)
}

// AtOrAbove returns the mask of s and every more severe level.
func (s Severity) AtOrAbove() Severity {
	var mask Severity
	for level := SeverityError; level >= s && level != 0; level >>= 1 {
		mask |= level
	}
	return mask
}

func (s Severity) String() string {
	var parts []string
	for level := SeverityVerbose; level <= SeverityError; level <<= 1 {
		if s&level != 0 {
			parts = append(parts, severityNames[level])
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

type MessageType uint32

const (
	TypeGeneral MessageType = 1 << iota
	TypeValidation
	TypePerformance

	TypeAll = TypeGeneral | TypeValidation | TypePerformance
)

func (t MessageType) String() string {
	var parts []string
	if t&TypeGeneral != 0 {
		parts = append(parts, "general")
	}
	if t&TypeValidation != 0 {
		parts = append(parts, "validation")
	}
	if t&TypePerformance != 0 {
		parts = append(parts, "performance")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

type Message struct {
	Severity Severity
	Types    MessageType
	Text     string
}

// Callback receives driver messages. A true return asks the driver to abort
// the call that triggered the message.
type Callback func(msg Message) bool

type DiagnosticsOptions struct {
	Severities Severity
	Types      MessageType
	Callback   Callback
}

// LogLevel is the logrus level a message of this severity is logged at.
// The most severe flag set wins.
func (s Severity) LogLevel() logrus.Level {
	switch {
	case s&SeverityError != 0:
		return logrus.ErrorLevel
	case s&SeverityWarning != 0:
		return logrus.WarnLevel
	case s&SeverityInfo != 0:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// LogDiagnostics returns a callback that forwards every message to logger
// and never aborts. It holds no state and is safe to call from any thread.
func LogDiagnostics(logger logrus.FieldLogger) Callback {
	return func(msg Message) bool {
		logger.WithFields(logrus.Fields{
			"severity": msg.Severity,
			"type":     msg.Types,
		}).Logf(msg.Severity.LogLevel(), "validation layer: %s", msg.Text)
		return false
	}
}
