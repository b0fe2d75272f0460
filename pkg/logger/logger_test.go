package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerRoutesByLevel(t *testing.T) {
	var info, errs bytes.Buffer
	log := NewLogger(&info, &errs, 16)

	log.Write(NewMessage(RULESET_LAYER, INFO, "loaded %d rules", 3))
	log.Write(NewMessage(ENGINE_LAYER, ERROR, "bad file %s", "x.tsv"))
	log.Write(NewMessage(SERVER_LAYER, DEBUG, "debug line\n"))
	log.Close()

	assert.Contains(t, info.String(), "INFO: loaded 3 rules on layer: ruleset")
	assert.Contains(t, info.String(), "DEBUG: debug line on layer: server\n")
	assert.Contains(t, errs.String(), "ERROR: bad file x.tsv on layer: engine")
	assert.NotContains(t, info.String(), "bad file")
}

func TestLoggerDebugDisabled(t *testing.T) {
	var info bytes.Buffer
	log := NewLogger(&info, &info, 4)
	log.SetDebug(false)
	log.Write(NewMessage(MAIN_LAYER, DEBUG, "hidden"))
	log.Close()
	assert.Empty(t, info.String())
}

func TestNilAndClosedLogger(t *testing.T) {
	var nilLog *Logger
	nilLog.Write(NewMessage(MAIN_LAYER, INFO, "dropped"))
	nilLog.Close()

	log := NewLogger(&bytes.Buffer{}, &bytes.Buffer{}, 1)
	log.Close()
	log.Close()
	log.Write(NewMessage(MAIN_LAYER, INFO, "after close"))
	assert.Equal(t, "layer(42)", layer(42).String())
}
