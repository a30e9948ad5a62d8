package btree

import "errors"

var (
	// ErrInvalidConfig signals an invalid map configuration.
	ErrInvalidConfig = errors.New("btree: invalid configuration")
	// ErrKeyNotFound signals lookup or removal of an absent key.
	ErrKeyNotFound = errors.New("btree: key not found")
	// ErrEmptyMap signals min/max/peek/pop access on an empty map.
	ErrEmptyMap = errors.New("btree: map is empty")
	// ErrIndexOutOfBounds signals an invalid positional index; PeekItem and
	// PopItem accept only 0 and Last.
	ErrIndexOutOfBounds = errors.New("btree: item index out of bounds")
	// ErrIncomparableKeys signals that the comparison function cannot order
	// two keys. The map is left unchanged when this happens.
	ErrIncomparableKeys = errors.New("btree: keys are not comparable")
)
