package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus"

	"github.com/vkngwrapper/bootstrap/internal/logging"
)

func TestNewJSON(t *testing.T) {
	c := qt.New(t)
	var buf bytes.Buffer

	logger, err := logging.New(&buf, "debug", "json")
	c.Assert(err, qt.IsNil)
	c.Check(logger.GetLevel(), qt.Equals, logrus.DebugLevel)

	logger.WithField("stage", "createInstance").Debug("stage complete")

	var line map[string]interface{}
	c.Assert(json.Unmarshal(buf.Bytes(), &line), qt.IsNil)
	c.Check(line["stage"], qt.Equals, "createInstance")
	c.Check(line["msg"], qt.Equals, "stage complete")
}

func TestNewFiltersBelowLevel(t *testing.T) {
	c := qt.New(t)
	var buf bytes.Buffer

	logger, err := logging.New(&buf, "warn", "text")
	c.Assert(err, qt.IsNil)

	logger.Info("instance created")
	c.Check(buf.Len(), qt.Equals, 0)

	logger.Warn("could not get physical device properties")
	c.Check(buf.String(), qt.Contains, "could not get physical device properties")
}

func TestNewRejectsUnknown(t *testing.T) {
	c := qt.New(t)

	_, err := logging.New(&bytes.Buffer{}, "loud", "text")
	c.Check(err, qt.ErrorMatches, `logging: not a valid logrus Level: "loud"`)

	_, err = logging.New(&bytes.Buffer{}, "info", "xml")
	c.Check(err, qt.ErrorMatches, `logging: unknown format "xml"`)
}
