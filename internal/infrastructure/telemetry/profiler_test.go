package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProfilerConfig
		want string
	}{
		{"missing server", ProfilerConfig{Enabled: true, ApplicationName: "orgdesk"}, "server address"},
		{"missing application", ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, "application name"},
		{"unknown profile", ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040", ApplicationName: "orgdesk", ProfileTypes: []string{"cpu", "heapish"}}, "heapish"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProfiler(tt.cfg, zap.NewNop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseProfileTypes(t *testing.T) {
	types, err := parseProfileTypes(nil)
	require.NoError(t, err)
	assert.Len(t, types, len(defaultProfileTypes))
	assert.Equal(t, pyroscope.ProfileCPU, types[0])

	types, err = parseProfileTypes([]string{" CPU ", "mutex_count"})
	require.NoError(t, err)
	assert.Equal(t, []pyroscope.ProfileType{pyroscope.ProfileCPU, pyroscope.ProfileMutexCount}, types)
	assert.True(t, hasProfile(types, pyroscope.ProfileMutexDuration, pyroscope.ProfileMutexCount))
	assert.False(t, hasProfile(types, pyroscope.ProfileBlockCount))
}

func TestSanitizeLabels(t *testing.T) {
	pairs := sanitizeLabels(map[string]string{
		ProfilingLabelRoute:  "/api/v1/organizations/:orgId/clients",
		ProfilingLabelMethod: "GET",
		"user_id":            "42",
		"empty":              "",
		"long":               strings.Repeat("x", MaxLabelValueLength+10),
	})

	require.Len(t, pairs, 6)
	assert.Equal(t, []string{"long", "method", "route"}, []string{pairs[0], pairs[2], pairs[4]})
	assert.Len(t, pairs[1], MaxLabelValueLength)
	assert.Equal(t, "GET", pairs[3])
}

func TestWithProfilingLabels_RunsFn(t *testing.T) {
	var ran int
	WithProfilingLabels(context.Background(), nil, func(context.Context) { ran++ })
	WithProfilingLabels(context.Background(), map[string]string{ProfilingLabelMethod: "POST"}, func(context.Context) { ran++ })
	assert.Equal(t, 2, ran)
}
