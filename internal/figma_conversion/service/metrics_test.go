package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	ResetMetrics()
	defer ResetMetrics()

	recordFigmaCall(false)
	recordFigmaCall(true)
	recordVisionCall(true)
	recordCodegenCall(100*time.Millisecond, nil)
	recordCodegenCall(300*time.Millisecond, errors.New("boom"))

	s := GetMetrics()
	assert.Equal(t, int64(2), s.FigmaCalls)
	assert.Equal(t, int64(1), s.FigmaDegraded)
	assert.Equal(t, int64(1), s.VisionCalls)
	assert.Equal(t, int64(1), s.VisionMisses)
	assert.Equal(t, int64(2), s.CodegenCalls)
	assert.Equal(t, int64(1), s.CodegenErrors)
	assert.InDelta(t, 200, s.CodegenAvgMs, 1)
	assert.InDelta(t, 50, s.CodegenErrorRate, 0.01)
}

func TestMetricsZeroState(t *testing.T) {
	ResetMetrics()

	s := GetMetrics()
	assert.Zero(t, s.CodegenAvgMs)
	assert.Zero(t, s.CodegenErrorRate)
}
