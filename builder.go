// SPDX-License-Identifier: MIT
package treeindex

import (
	"context"

	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/treeindex/types"
)

type (
	// Builder defines an interface for entities that can be read into an
	// Index, sparing callers a manual conversion of their record types.
	Builder[T Constraint] interface {
		// Value obtains the id stored by the Builder.
		Value() T
		// Parent obtains the parent reference stored by the Builder.
		Parent() Parent[T]
		// Attrs obtains the auxiliary attributes stored by the Builder.
		Attrs() types.AttrMap
	}

	// Source is a wrapper type for []Builder used to generate an Index.
	Source[T Constraint] struct {
		debug  bool
		logger logrus.FieldLogger

		list []Builder[T]
	}

	// DefaultBuilder is a sample Builder interface implementation.
	DefaultBuilder[T Constraint] struct {
		value  T
		parent Parent[T]
		attrs  types.AttrMap
	}

	// BuildOption defines the Source functional option type.
	BuildOption[T Constraint] func(*Source[T])
)

// NewDefaultBuilder instantiates a DefaultBuilder.
func NewDefaultBuilder[T Constraint](value T, parent Parent[T], attrs types.AttrMap) *DefaultBuilder[T] {
	return &DefaultBuilder[T]{value: value, parent: parent, attrs: attrs}
}

// Value obtains the id stored by the DefaultBuilder.
func (d *DefaultBuilder[T]) Value() T { return d.value }

// Parent obtains the parent reference stored by the DefaultBuilder.
func (d *DefaultBuilder[T]) Parent() Parent[T] { return d.parent }

// Attrs obtains the auxiliary attributes stored by the DefaultBuilder.
func (d *DefaultBuilder[T]) Attrs() types.AttrMap { return d.attrs }

// NewSource instantiates a Source.
func NewSource[T Constraint](options ...BuildOption[T]) *Source[T] {
	s := &Source[T]{
		logger: logrus.New(),
		list:   []Builder[T]{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithBuilders configures the underlying list.
func WithBuilders[T Constraint](list []Builder[T]) BuildOption[T] {
	return func(s *Source[T]) { s.list = list }
}

// WithBuildLogger configures the logger option.
func WithBuildLogger[T Constraint](logger logrus.FieldLogger) BuildOption[T] {
	return func(s *Source[T]) { s.logger = logger }
}

// WithDebug configures the debug option.
func WithDebug[T Constraint](debug bool) BuildOption[T] {
	return func(s *Source[T]) { s.debug = debug }
}

// Len retrieves the length of the Source.
func (s *Source[T]) Len() int { return len(s.list) }

// Build generates an [Index] from a Source, preserving the list's order.
func (s *Source[T]) Build(ctx context.Context, options ...Option[T]) (*Index[T], error) {
	items := make([]Item[T], len(s.list))
	for index := range s.list {
		items[index] = Item[T]{
			ID:     s.list[index].Value(),
			Parent: s.list[index].Parent(),
			Attrs:  s.list[index].Attrs(),
		}
	}

	if s.debug {
		s.logger.Debugf("source items: %+v", items)
	}

	return New(ctx, items, options...)
}
