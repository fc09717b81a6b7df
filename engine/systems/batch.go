package systems

import (
	"fmt"

	"github.com/fpicone/lumina/engine/containers"
	"github.com/fpicone/lumina/engine/core"
	"github.com/fpicone/lumina/engine/renderer"
	"github.com/fpicone/lumina/engine/renderer/components"
)

type BatchSystemConfig struct {
	/** @brief The maximum number of batches the system may allocate. */
	MaxBatchCount int
	/** @brief Vertex capacity ceiling of every batch. */
	VertexLimit int
	/** @brief Index capacity ceiling of every batch. */
	IndexLimit int
}

/**
 * @brief Owns the batch pool and drives every active batch once per frame.
 * Routing is deliberately simple: a renderable is offered to active batches
 * first-fit, and a fresh batch is drawn from the pool when all of them are
 * full. Batches that empty out hand themselves back through the release
 * callback and are reused before anything new is allocated.
 */
type BatchSystem struct {
	config   *BatchSystemConfig
	freeList *containers.RingQueue[*renderer.Batch]
	active   []*renderer.Batch
	created  int
}

func NewBatchSystem(config *BatchSystemConfig) (*BatchSystem, error) {
	if config.MaxBatchCount <= 0 {
		err := fmt.Errorf("func NewBatchSystem - config.MaxBatchCount must be > 0")
		core.LogWarn(err.Error())
		return nil, err
	}
	if config.VertexLimit <= 0 || config.IndexLimit <= 0 {
		err := fmt.Errorf("func NewBatchSystem - config.VertexLimit and config.IndexLimit must be > 0")
		core.LogWarn(err.Error())
		return nil, err
	}

	return &BatchSystem{
		config:   config,
		freeList: containers.NewRingQueue[*renderer.Batch](config.MaxBatchCount),
		active:   make([]*renderer.Batch, 0, config.MaxBatchCount),
	}, nil
}

/**
 * @brief Offers a renderable to the active batches first-fit. A rejection is
 * an expected outcome and moves on to the next batch; only pool exhaustion is
 * an error.
 */
func (bs *BatchSystem) Add(rd *components.RenderData) (renderer.AddResult, error) {
	if rd.Batch() != nil {
		err := fmt.Errorf("renderable '%s' is already assigned to a batch", rd.Name)
		core.LogWarn(err.Error())
		return renderer.AddRejected, err
	}

	for _, b := range bs.active {
		result := b.Add(rd)
		if result != renderer.AddRejected {
			return result, nil
		}
	}

	b, err := bs.acquire()
	if err != nil {
		return renderer.AddRejected, err
	}

	result := b.Add(rd)
	if result == renderer.AddRejected {
		// A fresh batch accepts anything: a lone oversized renderable is
		// forced onto the unbatched path instead. Getting here means the
		// renderable is malformed.
		err := fmt.Errorf("renderable '%s' was rejected by an empty batch", rd.Name)
		core.LogError(err.Error())
		return result, err
	}
	return result, nil
}

// acquire reuses a pooled batch or allocates a new one within the configured
// ceiling.
func (bs *BatchSystem) acquire() (*renderer.Batch, error) {
	if !bs.freeList.IsEmpty() {
		b, err := bs.freeList.Dequeue()
		if err != nil {
			return nil, err
		}
		bs.active = append(bs.active, b)
		return b, nil
	}

	if bs.created >= bs.config.MaxBatchCount {
		err := fmt.Errorf("unable to obtain free slot for batch. Adjust configuration to allow more space")
		core.LogError(err.Error())
		return nil, err
	}

	b := renderer.NewBatch(bs.config.VertexLimit, bs.config.IndexLimit, bs.free)
	bs.created++
	bs.active = append(bs.active, b)
	return b, nil
}

// free is the pool-owner callback handed to every batch; invoked when a batch
// empties out during SetupMesh.
func (bs *BatchSystem) free(b *renderer.Batch) {
	if err := bs.freeList.Enqueue(b); err != nil {
		core.LogWarn("batch free list full, destroying batch %d: %s", b.BatchID(), err.Error())
		b.Destroy()
		bs.created--
	}
}

/**
 * @brief Per-frame driver: refreshes every active batch and drops the ones
 * that emptied out and returned to the pool. Also refreshes the batching
 * metrics counters.
 */
func (bs *BatchSystem) Update() {
	kept := bs.active[:0]
	var merged, issued, without int32
	for _, b := range bs.active {
		if !b.SetupMesh(false) {
			continue
		}
		kept = append(kept, b)

		memberCount := int32(b.MemberCount())
		mergedCount := int32(b.DrawCount())
		without += memberCount
		merged += mergedCount
		if mergedCount > 0 {
			issued++
		}
		// Tracked members that did not merge are drawn individually.
		issued += memberCount - mergedCount
	}
	// Zero the tail so released batches are not pinned by the backing array.
	for i := len(kept); i < len(bs.active); i++ {
		bs.active[i] = nil
	}
	bs.active = kept

	core.MetricsUpdateBatching(int32(len(bs.active)), merged, issued, without)
}

// MarkAllDirty flags every active batch for regeneration on the next Update,
// used when a global setting affecting merged meshes changes.
func (bs *BatchSystem) MarkAllDirty() {
	for _, b := range bs.active {
		b.MarkDirty()
	}
}

// ActiveCount returns the number of batches currently holding members.
func (bs *BatchSystem) ActiveCount() int {
	return len(bs.active)
}

// FreeCount returns the number of pooled batches awaiting reuse.
func (bs *BatchSystem) FreeCount() int {
	return bs.freeList.Count()
}

// Batches returns the active batches in acquisition order.
func (bs *BatchSystem) Batches() []*renderer.Batch {
	out := make([]*renderer.Batch, len(bs.active))
	copy(out, bs.active)
	return out
}

func (bs *BatchSystem) Shutdown() error {
	for _, b := range bs.active {
		b.Destroy()
	}
	bs.active = nil
	for !bs.freeList.IsEmpty() {
		b, err := bs.freeList.Dequeue()
		if err != nil {
			return err
		}
		b.Destroy()
	}
	bs.created = 0
	return nil
}
