// SPDX-License-Identifier: MIT
package types

import (
	"errors"
	"fmt"
	"reflect"
)

type (
	// AttrMap contains an item's auxiliary attributes.
	//
	// The values ride along untouched by the index; typed getters follow
	// encoding/json conventions, numbers decode as float64.
	AttrMap map[string]interface{}
)

const (
	// ReadErrFmt defines the format for attribute read failure messages.
	ReadErrFmt = "failed to read (%s): %w"
)

// Attribute errors.
var (
	ErrInvalidType = errors.New("invalid data type")
)

// Add a value to the AttrMap, allocating the map for a nil target.
func (a *AttrMap) Add(key string, val interface{}) {
	if *a == nil {
		*a = make(AttrMap)
	}

	(*a)[key] = val
}

// Get a value from the AttrMap.
func (a *AttrMap) Get(key string) (out interface{}, ok bool) {
	out, ok = (*a)[key]
	return
}

// Delete a value from the AttrMap.
func (a *AttrMap) Delete(key string) { delete(*a, key) }

// GetString obtains a string attribute.
func (a *AttrMap) GetString(key string) (strVal string, err error) {
	if val, ok := (*a)[key]; ok {
		if strVal, ok = val.(string); !ok {
			err = fmt.Errorf(ReadErrFmt, key, ErrInvalidType)
		}
	}

	return
}

// GetInt obtains an integer attribute.
//
// Handles the float64 values produced by JSON decoded sources.
func (a *AttrMap) GetInt(key string) (intVal int, err error) {
	val, ok := (*a)[key]
	if !ok {
		return
	}

	switch v := val.(type) {
	case int:
		intVal = v
	case float64:
		intVal = int(v)
	default:
		err = fmt.Errorf(ReadErrFmt, key, ErrInvalidType)
	}

	return
}

// GetBool obtains a boolean attribute.
func (a *AttrMap) GetBool(key string) (boolVal bool, err error) {
	if val, ok := (*a)[key]; ok {
		if boolVal, ok = val.(bool); !ok {
			err = fmt.Errorf(ReadErrFmt, key, ErrInvalidType)
		}
	}

	return
}

// Merge an AttrMap into the current one.
func (a *AttrMap) Merge(data AttrMap) {
	for k, v := range data {
		a.Add(k, v)
	}
}

// Clone the AttrMap.
func (a *AttrMap) Clone() (out AttrMap) {
	if *a == nil {
		return
	}

	out = make(AttrMap, len(*a))
	for k, v := range *a {
		out[k] = v
	}

	return
}

// Equal compares two AttrMaps by value.
//
// A nil map & an allocated empty map compare equal.
func (a *AttrMap) Equal(other AttrMap) bool {
	if len(*a) != len(other) {
		return false
	}

	for k, v := range *a {
		o, ok := other[k]
		if !ok || !reflect.DeepEqual(v, o) {
			return false
		}
	}

	return true
}
