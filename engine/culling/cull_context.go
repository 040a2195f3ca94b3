package culling

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/logging"
)

type frustumCullWorkerContext struct {
	logger logging.Logger

	items   []WorkItem
	results [][]int

	initialCapacity int
}

// FrustumCullWorkerContext batches frustum-vs-box tests. Callers submit work items,
// run one of the Process methods, then read the surviving box indices per item.
//
// A context is used by one goroutine at a time (the Update stage). The
// multi-threaded path fans the items out over a worker pool and joins before
// returning, so results are only read after all workers are done.
type FrustumCullWorkerContext interface {
	// AddWorkerItem submits a frustum and the boxes to test against it.
	// It panics if boxes and owners differ in length.
	//
	// Parameters:
	//   - frustum: the plane set to test against
	//   - boxes: world-space boxes
	//   - owners: one owner handle per box
	//
	// Returns:
	//   - int: the frustum index, equal to the submission order since the last clear
	AddWorkerItem(frustum common.FrustumPlaneset, boxes []common.BoundingBox, owners []common.Handle) int

	// ProcessWorkItemsSingleThreaded culls every submitted item on the calling goroutine.
	ProcessWorkItemsSingleThreaded()

	// ProcessWorkItemsMultiThreaded culls the submitted items over the pool and blocks
	// until every item is done. Results are identical to the single-threaded path.
	// A workerCount <= 1 or a nil pool runs single-threaded.
	//
	// Parameters:
	//   - workerCount: the maximum number of concurrent tasks
	//   - pool: the worker pool to submit tasks to
	ProcessWorkItemsMultiThreaded(workerCount int, pool worker.DynamicWorkerPool)

	// Result returns the indices of the boxes of item frustumIndex that survived
	// culling, in box order. The slice is owned by the context and valid until the
	// next ClearWorkItems. It panics on an out-of-range index.
	//
	// Parameters:
	//   - frustumIndex: the index returned by AddWorkerItem
	//
	// Returns:
	//   - []int: surviving box indices, never nil after processing
	Result(frustumIndex int) []int

	// NumWorkItems returns the number of submitted items.
	//
	// Returns:
	//   - int: the item count
	NumWorkItems() int

	// WorkItem returns the submitted item at frustumIndex.
	//
	// Parameters:
	//   - frustumIndex: the index returned by AddWorkerItem
	//
	// Returns:
	//   - WorkItem: the submitted item
	WorkItem(frustumIndex int) WorkItem

	// ClearWorkItems drops all items and results while keeping their storage.
	ClearWorkItems()
}

var _ FrustumCullWorkerContext = &frustumCullWorkerContext{}

// NewFrustumCullWorkerContext creates an empty cull context.
//
// Parameters:
//   - options: functional options to configure the context
//
// Returns:
//   - FrustumCullWorkerContext: the new context
func NewFrustumCullWorkerContext(options ...CullBuilderOption) FrustumCullWorkerContext {
	c := &frustumCullWorkerContext{
		initialCapacity: 16,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewDefaultLogger("culling")
	}
	c.items = make([]WorkItem, 0, c.initialCapacity)
	c.results = make([][]int, 0, c.initialCapacity)
	return c
}

func (c *frustumCullWorkerContext) AddWorkerItem(frustum common.FrustumPlaneset, boxes []common.BoundingBox, owners []common.Handle) int {
	if len(boxes) != len(owners) {
		panic(fmt.Sprintf("culling: AddWorkerItem got %d boxes and %d owners", len(boxes), len(owners)))
	}
	idx := len(c.items)
	c.items = append(c.items, WorkItem{Frustum: frustum, Boxes: boxes, Owners: owners})

	// Reuse a result buffer left over from a previous frame when there is one.
	if idx < cap(c.results) {
		c.results = c.results[:idx+1]
		if c.results[idx] == nil {
			c.results[idx] = make([]int, 0, len(boxes))
		}
		c.results[idx] = c.results[idx][:0]
	} else {
		c.results = append(c.results, make([]int, 0, len(boxes)))
	}
	return idx
}

func (c *frustumCullWorkerContext) ProcessWorkItemsSingleThreaded() {
	c.processRange(0, len(c.items))
}

func (c *frustumCullWorkerContext) ProcessWorkItemsMultiThreaded(workerCount int, pool worker.DynamicWorkerPool) {
	// A single item cannot be split; main view contexts always land here.
	if workerCount <= 1 || pool == nil || len(c.items) <= 1 {
		c.ProcessWorkItemsSingleThreaded()
		return
	}
	c.logger.Debugf("culling %d work items over %d workers", len(c.items), workerCount)

	// Each task writes only the result slots of its own range, so no locking is
	// needed. The WaitGroup is the per-call barrier; pool.Wait would block until
	// the workers idle out.
	var wg sync.WaitGroup
	for id, r := range partition(len(c.items), workerCount) {
		wg.Add(1)
		rng := r
		pool.SubmitTask(worker.Task{
			ID:      id,
			Payload: rng,
			Do: func() (any, error) {
				defer wg.Done()
				c.processRange(rng.start, rng.end)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (c *frustumCullWorkerContext) processRange(start, end int) {
	for i := start; i < end; i++ {
		item := &c.items[i]
		out := c.results[i][:0]
		for b := range item.Boxes {
			if item.Frustum.IntersectsAABB(item.Boxes[b]) {
				out = append(out, b)
			}
		}
		c.results[i] = out
	}
}

func (c *frustumCullWorkerContext) Result(frustumIndex int) []int {
	if frustumIndex < 0 || frustumIndex >= len(c.results) {
		panic(fmt.Sprintf("culling: frustum index %d out of range [0, %d)", frustumIndex, len(c.results)))
	}
	return c.results[frustumIndex]
}

func (c *frustumCullWorkerContext) NumWorkItems() int {
	return len(c.items)
}

func (c *frustumCullWorkerContext) WorkItem(frustumIndex int) WorkItem {
	if frustumIndex < 0 || frustumIndex >= len(c.items) {
		panic(fmt.Sprintf("culling: frustum index %d out of range [0, %d)", frustumIndex, len(c.items)))
	}
	return c.items[frustumIndex]
}

func (c *frustumCullWorkerContext) ClearWorkItems() {
	clear(c.items)
	c.items = c.items[:0]
	c.results = c.results[:0]
}
