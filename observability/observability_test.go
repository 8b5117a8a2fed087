package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", &buf)

	logger.Info("hidden")
	logger.WithField("type", "stress").Warn("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "stress", entry["type"])
}

func TestNewLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	logger := NewLogger("chatty", &bytes.Buffer{})

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordExplain("stress", "live")
	m.RecordExplain("stress", "live")
	m.RecordExplain("scenario", "request_error")
	m.IncRateLimited()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.explanations.WithLabelValues("stress", "live")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.explanations.WithLabelValues("scenario", "request_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited))
}
