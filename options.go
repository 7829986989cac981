// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compute

// Option configures a [Manager] or [Session] during creation.
//
// Example:
//
//	// Default configuration
//	mgr, err := compute.NewManager(dev)
//
//	// Prefixed debug labels
//	mgr, err := compute.NewManager(dev, compute.WithLabelPrefix("fluid"))
type Option func(*managerOptions)

// managerOptions holds optional configuration for Manager and Session
// creation.
type managerOptions struct {
	labelPrefix string
	globals     *Globals
}

// defaultManagerOptions returns the default options.
func defaultManagerOptions() managerOptions {
	return managerOptions{}
}

// WithLabelPrefix prefixes every device debug label issued through the
// manager with prefix + "/". Useful when several managers share one
// device and captures need to tell their resources apart.
func WithLabelPrefix(prefix string) Option {
	return func(o *managerOptions) {
		o.labelPrefix = prefix
	}
}

// WithGlobals makes a [Session] adopt an existing global state table
// instead of creating its own. Programs created through the session
// consult this table at dispatch.
func WithGlobals(g *Globals) Option {
	return func(o *managerOptions) {
		o.globals = g
	}
}
