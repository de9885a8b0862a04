package kdtree

import "errors"

var (
	ErrInvariantViolated = errors.New("kdtree: invariant violated")
	ErrCountMismatch     = errors.New("kdtree: node count does not match its run")
	ErrBadBackReference  = errors.New("kdtree: point does not reference its leaf")
	ErrNotContiguous     = errors.New("kdtree: child runs are not contiguous")
	ErrSplitOutOfBound   = errors.New("kdtree: split position outside the inherited bound")
	ErrBadParent         = errors.New("kdtree: child does not reference its parent")
	ErrLeafCount         = errors.New("kdtree: leaf count is not intermediate count plus one")
	ErrStrayLeafRef      = errors.New("kdtree: hidden or pending point carries a leaf reference")
	ErrPointOutOfBound   = errors.New("kdtree: point outside the tree or node bound")
	ErrInvalidAfterFlush = errors.New("kdtree: node still invalid after update")
)
