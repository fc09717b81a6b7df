package core

import "sync"

const AVG_COUNT uint8 = 30

type MetricsState struct {
	FrameAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64

	// Batching counters, refreshed once per frame by the batch system.
	ActiveBatches    int32
	MergedDraws      int32
	DrawCallsIssued  int32
	DrawCallsWithout int32
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			MStimes: [AVG_COUNT]float64{0},
		}
	})
	return nil
}

func MetricsUpdate(frame_elapsed_time float64) {
	// Calculate frame ms average
	frame_ms := (frame_elapsed_time * 1000.0)
	metricsState.MStimes[metricsState.FrameAVGCounter] = frame_ms
	if metricsState.FrameAVGCounter == AVG_COUNT-1 {
		for i := uint8(0); i < AVG_COUNT; i++ {
			metricsState.MSavg += metricsState.MStimes[i]
		}

		metricsState.MSavg /= float64(AVG_COUNT)
	}
	metricsState.FrameAVGCounter++
	metricsState.FrameAVGCounter %= AVG_COUNT

	// Calculate Frames per second.
	metricsState.AccumulatedFrameMS += frame_ms
	if metricsState.AccumulatedFrameMS > 1000 {
		metricsState.FPS = float64(metricsState.Frames)
		metricsState.AccumulatedFrameMS -= 1000
		metricsState.Frames = 0
	}

	// Count all Frames.
	metricsState.Frames++
}

// MetricsUpdateBatching records how much the batcher collapsed the scene this
// frame: issued is the number of draw calls actually submitted, merged is the
// number of renderables folded into combined meshes.
func MetricsUpdateBatching(activeBatches, merged, issued, without int32) {
	if metricsState == nil {
		return
	}
	metricsState.ActiveBatches = activeBatches
	metricsState.MergedDraws = merged
	metricsState.DrawCallsIssued = issued
	metricsState.DrawCallsWithout = without
}

func MetricsFPS() float64 {
	return metricsState.FPS
}

func MetricsFrameTime() float64 {
	return metricsState.MSavg
}

func MetricsFrame() (float64, float64) {
	return metricsState.FPS, metricsState.MSavg
}

func MetricsBatching() (int32, int32, int32, int32) {
	if metricsState == nil {
		return 0, 0, 0, 0
	}
	return metricsState.ActiveBatches, metricsState.MergedDraws,
		metricsState.DrawCallsIssued, metricsState.DrawCallsWithout
}
