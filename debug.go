package spine

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and geometry metrics.
// Only populated when GeneratorConfig.Debug is true.
type debugStats struct {
	FrameStats
	frame        uint64
	generateTime time.Duration
}

// debugLog prints timing and batch stats to stderr.
func (g *Generator) debugLog(stats debugStats) {
	if !g.cfg.Debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[spine] frame %d | generate: %v | slots: %d drawn / %d total | clipped: %d\n",
		stats.frame, stats.generateTime, stats.DrawnSlots, stats.Slots, stats.ClippedSlots)
	_, _ = fmt.Fprintf(os.Stderr,
		"[spine] vertices: %d | indices: %d | batches: %d | materials: %d\n",
		stats.Vertices, stats.Indices, stats.Batches, countMaterials(g.builder.Batches()))
	if stats.Batches > 0 && stats.Batches > countMaterials(g.builder.Batches())*4 {
		_, _ = fmt.Fprintf(os.Stderr,
			"[spine] warning: %d batches for %d materials; draw order interleaves pages or blend modes\n",
			stats.Batches, countMaterials(g.builder.Batches()))
	}
}

// countMaterials counts the distinct page/blend pairs across batches. The
// gap between this and the batch count is what interleaved draw order costs.
func countMaterials(batches []RenderBatch) int {
	seen := make(map[batchKey]struct{}, len(batches))
	for i := range batches {
		seen[batches[i].key()] = struct{}{}
	}
	return len(seen)
}
