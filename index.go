// SPDX-License-Identifier: MIT
package treeindex

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
)

type (
	// Index holds a one-shot index over a flat list of parent-linked items.
	//
	// The three lookup maps are built once by New; the type is read-only
	// afterwards, so concurrent readers need no synchronization.
	Index[T Constraint] struct {
		// cfg contains a pointer to a [Config] shared by the Index operations.
		cfg *Config

		// items retains the input sequence in its original order.
		items []Item[T]

		// byID maps an id to its item.
		byID map[T]Item[T]

		// children maps an id to its immediate children, in input order.
		children map[T][]Item[T]

		// ancestors maps an id to its ancestor chain, nearest ancestor first.
		ancestors map[T][]Item[T]
	}

	// Config defines configuration options for the [Index]'s operations.
	Config struct {
		// Logger for [Index] messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}

	// Option defines the Index functional option type.
	Option[T Constraint] func(*Index[T])
)

// Errors encountered when handling an Index.
var (
	ErrIDNotFound = errors.New("not found")

	ErrBuildIndex = errors.New("failed to build index")

	ErrMalformedTree  = errors.New("malformed tree")
	ErrCyclicParent   = errors.New("has a cyclic parent chain at")
	ErrDanglingParent = errors.New("references the unknown parent")
)

var defConfig = DefConfig()

// DefConfig obtains the package's [Index] default options.
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
	}
}

// New builds a ready-to-query [Index] from a finite item sequence.
//
// The sequence & its records are referenced as-is, not deep-copied; they must
// not be mutated while the Index is in use. Ids are expected to be unique; a
// duplicate silently displaces the earlier entry in the id lookup.
//
// A cyclic parent chain or a parent reference to an id absent from the
// sequence fails the build with an error wrapping [ErrMalformedTree].
func New[T Constraint](ctx context.Context, items []Item[T], options ...Option[T]) (idx *Index[T], err error) {
	defer func() {
		if err == nil {
			return
		}

		if idx.cfg.Debug {
			idx.cfg.Logger.Debugf("source items: %s", spew.Sprint(items))
		}
		idx, err = nil, fmt.Errorf("%w: %w", ErrBuildIndex, err)
	}()

	idx = &Index[T]{
		cfg:       defConfig,
		items:     items,
		byID:      make(map[T]Item[T], len(items)),
		children:  make(map[T][]Item[T]),
		ancestors: make(map[T][]Item[T], len(items)),
	}
	for _, opt := range options {
		opt(idx)
	}

	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
	}

	// Single pass for the id & children lookups; append preserves the input
	// order within each children list.
	for _, item := range items {
		idx.byID[item.ID] = item

		if pid, ok := item.Parent.ID(); ok {
			idx.children[pid] = append(idx.children[pid], item)
		}
	}

	err = idx.computeAncestors(ctx)

	return
}

// WithConfig configures the [Index] [Config].
func WithConfig[T Constraint](cfg *Config) Option[T] {
	return func(idx *Index[T]) { idx.cfg = cfg }
}

// Config retrieves the [Index]'s [Config].
func (idx *Index[T]) Config() *Config { return idx.cfg }

// computeAncestors walks every item's parent chain on a goroutine pool.
//
// The chains are computed independently of each other, so the walks share no
// state beyond their private result slots.
func (idx *Index[T]) computeAncestors(ctx context.Context) (err error) {
	pool, err := ants.NewPool(runtime.NumCPU())
	if err != nil {
		return
	}
	defer pool.Release()

	var (
		wg     sync.WaitGroup
		chains = make([][]Item[T], len(idx.items))

		errOnce sync.Once
		walkErr error
	)

	for index := range idx.items {
		index := index

		wg.Add(1)
		if err = pool.Submit(func() {
			defer wg.Done()

			chain, cErr := idx.walkParents(ctx, idx.items[index])
			if cErr != nil {
				errOnce.Do(func() { walkErr = cErr })
				return
			}

			chains[index] = chain
		}); err != nil {
			wg.Done()
			return
		}
	}
	wg.Wait()

	if walkErr != nil {
		err = fmt.Errorf("%w: %w", ErrMalformedTree, walkErr)
		return
	}

	for index := range idx.items {
		idx.ancestors[idx.items[index].ID] = chains[index]
	}

	return
}

// walkParents collects the ancestor chain for an item, nearest ancestor first.
//
// The visited set guards the walk against cyclic & dangling parent references,
// which would otherwise never terminate.
func (idx *Index[T]) walkParents(ctx context.Context, item Item[T]) (chain []Item[T], err error) {
	chain = make([]Item[T], 0)
	visited := map[T]struct{}{item.ID: {}}

	parent := item.Parent
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		pid, ok := parent.ID()
		if !ok {
			// Reached the root marker.
			return
		}

		next, ok := idx.byID[pid]
		if !ok {
			err = fmt.Errorf("(%v) %w (%v)", item.ID, ErrDanglingParent, pid)
			return
		}

		if _, seen := visited[pid]; seen {
			err = fmt.Errorf("(%v) %w (%v)", item.ID, ErrCyclicParent, pid)
			return
		}
		visited[pid] = struct{}{}

		chain = append(chain, next)
		parent = next.Parent
	}
}

// Len retrieves the number of indexed items.
func (idx *Index[T]) Len() int { return len(idx.items) }

// All retrieves the original input sequence, in its original order.
func (idx *Index[T]) All() []Item[T] { return idx.items }

// Item retrieves the item with some id.
func (idx *Index[T]) Item(_ context.Context, id T) (item Item[T], err error) {
	item, ok := idx.byID[id]
	if !ok {
		err = fmt.Errorf("(%v) %w", id, ErrIDNotFound)
	}

	return
}

// Children lists the immediate children for an item, in input order.
//
// An item without children yields an empty list; an id absent from the item
// set is an error, even where it never occurs as a parent reference.
func (idx *Index[T]) Children(_ context.Context, id T) (children []Item[T], err error) {
	if _, ok := idx.byID[id]; !ok {
		err = fmt.Errorf("(%v) %w", id, ErrIDNotFound)
		return
	}

	if children = idx.children[id]; children == nil {
		children = []Item[T]{}
	}

	return
}

// AllParents lists an item's ancestor chain: the nearest ancestor first, the
// root-adjacent ancestor last.
//
// A root item yields an empty list; an id absent from the item set is an
// error.
func (idx *Index[T]) AllParents(_ context.Context, id T) (parents []Item[T], err error) {
	if parents = idx.ancestors[id]; parents == nil {
		err = fmt.Errorf("(%v) %w", id, ErrIDNotFound)
	}

	return
}
