// Package gfx tracks GPU resources for teardown.
package gfx

import (
	"fmt"

	"go.uber.org/multierr"
)

// Resource is a GPU handle that can be freed.
type Resource interface {
	Release() error
}

type funcResource struct {
	release func() error
}

func (f *funcResource) Release() error { return f.release() }

// Func adapts a release function to a Resource with its own identity.
func Func(release func() error) Resource {
	return &funcResource{release: release}
}

// Arena owns every GPU handle created for a scene and releases each exactly
// once. It is not safe for concurrent use; GL calls are single-threaded.
type Arena struct {
	owned    []Resource
	seen     map[Resource]struct{}
	released bool
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{seen: make(map[Resource]struct{})}
}

// Own records r and returns it. Owning the same handle again is a no-op.
// r must be comparable, which pointer handles are.
func (a *Arena) Own(r Resource) Resource {
	if r == nil {
		return nil
	}
	if _, ok := a.seen[r]; ok {
		return r
	}
	a.seen[r] = struct{}{}
	a.owned = append(a.owned, r)
	return r
}

// Len returns the number of owned handles.
func (a *Arena) Len() int {
	return len(a.owned)
}

// Released reports whether Release has run.
func (a *Arena) Released() bool {
	return a.released
}

// Release frees owned handles in reverse order of ownership. Every handle
// is attempted even if some fail; failures are combined. Later calls do
// nothing.
func (a *Arena) Release() error {
	if a.released {
		return nil
	}
	a.released = true

	var err error
	for i := len(a.owned) - 1; i >= 0; i-- {
		if rerr := a.owned[i].Release(); rerr != nil {
			err = multierr.Append(err, fmt.Errorf("releasing %T: %w", a.owned[i], rerr))
		}
	}
	a.owned = nil
	clear(a.seen)
	return err
}
