package culling

import "github.com/Carmen-Shannon/oxy-frames/engine/logging"

// CullBuilderOption is a functional option for configuring a FrustumCullWorkerContext.
type CullBuilderOption func(*frustumCullWorkerContext)

// WithLogger sets the logger used by the context.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - CullBuilderOption: option function to apply
func WithLogger(l logging.Logger) CullBuilderOption {
	return func(c *frustumCullWorkerContext) {
		c.logger = l
	}
}

// WithInitialCapacity presizes the item and result storage.
//
// Parameters:
//   - n: expected work items per frame (ignored if <= 0)
//
// Returns:
//   - CullBuilderOption: option function to apply
func WithInitialCapacity(n int) CullBuilderOption {
	return func(c *frustumCullWorkerContext) {
		if n > 0 {
			c.initialCapacity = n
		}
	}
}
