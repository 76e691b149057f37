package service

import (
	"sync/atomic"
	"time"
)

type metrics struct {
	figmaCalls     int64
	figmaDegraded  int64
	visionCalls    int64
	visionMisses   int64
	codegenCalls   int64
	codegenErrors  int64
	codegenLatency int64 // total latency in nanoseconds
}

var globalMetrics = &metrics{}

// MetricsSnapshot is a point-in-time view of the pipeline's upstream call
// counters, as served by the stats endpoint.
type MetricsSnapshot struct {
	FigmaCalls       int64   `json:"figmaCalls"`
	FigmaDegraded    int64   `json:"figmaDegraded"`
	VisionCalls      int64   `json:"visionCalls"`
	VisionMisses     int64   `json:"visionMisses"`
	CodegenCalls     int64   `json:"codegenCalls"`
	CodegenErrors    int64   `json:"codegenErrors"`
	CodegenAvgMs     float64 `json:"codegenAvgMs"`
	CodegenErrorRate float64 `json:"codegenErrorRate"`
}

// GetMetrics returns the current counters.
func GetMetrics() MetricsSnapshot {
	s := MetricsSnapshot{
		FigmaCalls:    atomic.LoadInt64(&globalMetrics.figmaCalls),
		FigmaDegraded: atomic.LoadInt64(&globalMetrics.figmaDegraded),
		VisionCalls:   atomic.LoadInt64(&globalMetrics.visionCalls),
		VisionMisses:  atomic.LoadInt64(&globalMetrics.visionMisses),
		CodegenCalls:  atomic.LoadInt64(&globalMetrics.codegenCalls),
		CodegenErrors: atomic.LoadInt64(&globalMetrics.codegenErrors),
	}
	latency := atomic.LoadInt64(&globalMetrics.codegenLatency)
	if s.CodegenCalls > 0 {
		s.CodegenAvgMs = float64(latency) / float64(s.CodegenCalls) / 1e6
		s.CodegenErrorRate = float64(s.CodegenErrors) / float64(s.CodegenCalls) * 100
	}
	return s
}

// ResetMetrics resets all counters (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.figmaCalls, 0)
	atomic.StoreInt64(&globalMetrics.figmaDegraded, 0)
	atomic.StoreInt64(&globalMetrics.visionCalls, 0)
	atomic.StoreInt64(&globalMetrics.visionMisses, 0)
	atomic.StoreInt64(&globalMetrics.codegenCalls, 0)
	atomic.StoreInt64(&globalMetrics.codegenErrors, 0)
	atomic.StoreInt64(&globalMetrics.codegenLatency, 0)
}

func recordFigmaCall(degraded bool) {
	atomic.AddInt64(&globalMetrics.figmaCalls, 1)
	if degraded {
		atomic.AddInt64(&globalMetrics.figmaDegraded, 1)
	}
}

func recordVisionCall(miss bool) {
	atomic.AddInt64(&globalMetrics.visionCalls, 1)
	if miss {
		atomic.AddInt64(&globalMetrics.visionMisses, 1)
	}
}

func recordCodegenCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.codegenCalls, 1)
	atomic.AddInt64(&globalMetrics.codegenLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.codegenErrors, 1)
	}
}
