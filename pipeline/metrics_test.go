package pipeline

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohankumardubey/liveoak/metric"
)

func TestPipelineMetrics_DuplicateRegistrationLogged(t *testing.T) {
	registry := metric.NewRegistry()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	newPipelineMetrics(registry, logger)
	assert.Empty(t, buf.String())

	// A second pipeline sharing the registry collides on every metric key.
	// The conflict must show up in the log, not disappear from scrapes
	// unnoticed.
	newPipelineMetrics(registry, logger)
	assert.Contains(t, buf.String(), "metric registration failed")
	assert.Contains(t, buf.String(), "requests_total")
}
