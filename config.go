package btree

import "fmt"

// DefaultOrder is the branching factor used when Config.Order is zero.
// Order 32 keeps trees of a few hundred thousand entries at height 4
// or less while nodes still fit a couple of cache lines.
const DefaultOrder = 32

// Config configures a Map. The zero value is not usable on its own:
// a comparison function is required, the order may be left zero.
type Config[K any] struct {
	// Order is the maximum number of children per internal node,
	// following Knuth's definition: a node holds at most Order-1 keys,
	// non-root nodes hold at least ceil(Order/2)-1. Zero selects
	// DefaultOrder; anything below 2 is invalid.
	Order int
	// Compare orders keys. Required.
	Compare CompareFunc[K]
}

func (cfg Config[K]) normalized() Config[K] {
	if cfg.Order == 0 {
		cfg.Order = DefaultOrder
	}
	return cfg
}

func (cfg Config[K]) validate() error {
	cfg = cfg.normalized()
	if cfg.Order < 2 {
		return fmt.Errorf("%w: order must be at least 2, got %d", ErrInvalidConfig, cfg.Order)
	}
	if cfg.Compare == nil {
		return fmt.Errorf("%w: compare function is required", ErrInvalidConfig)
	}
	return nil
}
