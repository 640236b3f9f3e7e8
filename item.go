// SPDX-License-Identifier: MIT
package treeindex

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"gitlab.com/fisherprime/treeindex/types"
)

// Constraint is a wrapper interface containing comparable & constraints.Ordered.
type Constraint interface {
	comparable
	constraints.Ordered
}

type (
	// Item is a single indexable record: a unique id, a parent reference & an
	// open bag of attributes the index preserves but never inspects.
	Item[T Constraint] struct {
		ID     T
		Parent Parent[T]
		Attrs  types.AttrMap
	}

	// Parent is a tagged reference to an item's parent: either the root marker
	// or another item's id.
	//
	// The zero value is the root marker.
	Parent[T Constraint] struct {
		id     T
		isItem bool
	}
)

// Root obtains a Parent marking an item without a parent.
func Root[T Constraint]() Parent[T] { return Parent[T]{} }

// ParentOf obtains a Parent referencing the item with some id.
func ParentOf[T Constraint](id T) Parent[T] { return Parent[T]{id: id, isItem: true} }

// IsRoot checks whether the reference is the root marker.
func (p Parent[T]) IsRoot() bool { return !p.isItem }

// ID retrieves the referenced id; ok is false for the root marker.
func (p Parent[T]) ID() (id T, ok bool) { return p.id, p.isItem }

// String implements fmt.Stringer for a Parent.
func (p Parent[T]) String() string {
	if !p.isItem {
		return DefaultSentinel
	}

	return fmt.Sprint(p.id)
}
