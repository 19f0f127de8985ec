package core

import "sync"

const AVG_COUNT uint8 = 30

type MetricsState struct {
	MeshAVGCounter    uint8
	MStimes           [AVG_COUNT]float64
	MSavg             float64
	MeshesProcessed   int64
	VerticesIn        int64
	VerticesOut       int64
	DuplicatesRemoved int64
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

// MetricsRecord accounts for one compacted mesh. elapsed_ms is the time the
// compaction took, in milliseconds.
func MetricsRecord(vertsIn, vertsOut int, elapsed_ms float64) {
	metricsState.MStimes[metricsState.MeshAVGCounter] = elapsed_ms
	if metricsState.MeshAVGCounter == AVG_COUNT-1 {
		for i := uint8(0); i < AVG_COUNT; i++ {
			metricsState.MSavg += metricsState.MStimes[i]
		}

		metricsState.MSavg /= float64(AVG_COUNT)
	}
	metricsState.MeshAVGCounter++
	metricsState.MeshAVGCounter %= AVG_COUNT

	metricsState.MeshesProcessed++
	metricsState.VerticesIn += int64(vertsIn)
	metricsState.VerticesOut += int64(vertsOut)
	metricsState.DuplicatesRemoved += int64(vertsIn - vertsOut)
}

func MetricsMeshesProcessed() int64 {
	return metricsState.MeshesProcessed
}

func MetricsDuplicatesRemoved() int64 {
	return metricsState.DuplicatesRemoved
}

func MetricsCompactionTime() float64 {
	return metricsState.MSavg
}

func MetricsTotals() (int64, int64, int64) {
	return metricsState.MeshesProcessed, metricsState.VerticesIn, metricsState.VerticesOut
}
