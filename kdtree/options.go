package kdtree

import (
	"github.com/datatrails/go-datatrails-common/logger"
)

// Options configures a Tree. They are fixed at construction.
type Options struct {
	UpdateMode UpdateMode
	// SimulateKdTree makes the children of a split take the cell bound
	// clipped at the split plane rather than the tight bound of their points.
	SimulateKdTree bool
	// PointsHint pre-sizes the point store.
	PointsHint int
	Log        logger.Logger
}

// Option sets one field of Options.
type Option func(*Options)

// WithUpdateMode selects immediate (the default) or lazy updates.
func WithUpdateMode(mode UpdateMode) Option {
	return func(o *Options) {
		o.UpdateMode = mode
	}
}

// WithSimulateKdTree bounds children by their cell rather than their points.
func WithSimulateKdTree(simulate bool) Option {
	return func(o *Options) {
		o.SimulateKdTree = simulate
	}
}

// WithPointsHint pre-sizes the point store for n points.
func WithPointsHint(n int) Option {
	return func(o *Options) {
		o.PointsHint = n
	}
}

// WithLogger replaces the package logger.
func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		o.Log = log
	}
}

// NewOptions applies opts over the defaults. When no logger is given the
// package logger is used if it has been initialised.
func NewOptions(opts ...Option) Options {
	o := Options{UpdateMode: UpdateImmediate}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Log == nil && logger.Sugar != nil {
		o.Log = logger.Sugar.WithServiceName("kdtree")
	}
	return o
}
