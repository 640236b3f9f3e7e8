// SPDX-License-Identifier: MIT
package types

import (
	"errors"
	"testing"
)

func TestAttrMap_Add(t *testing.T) {
	// Add allocates for a nil map.
	var a AttrMap
	a.Add("name", "one")

	if val, ok := a.Get("name"); !ok || val != "one" {
		t.Errorf("AttrMap.Get() = %v, %v, want one, true", val, ok)
	}
}

func TestAttrMap_GetInt(t *testing.T) {
	tests := []struct {
		name    string
		a       AttrMap
		key     string
		want    int
		wantErr bool
	}{
		{name: "int", a: AttrMap{"weight": 3}, key: "weight", want: 3},
		{name: "json float", a: AttrMap{"weight": float64(3)}, key: "weight", want: 3},
		{name: "missing", a: AttrMap{}, key: "weight"},
		{name: "wrong type", a: AttrMap{"weight": "three"}, key: "weight", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.GetInt(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("AttrMap.GetInt() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidType) {
					t.Errorf("AttrMap.GetInt() error = %v, want %v", err, ErrInvalidType)
				}
				return
			}

			if got != tt.want {
				t.Errorf("AttrMap.GetInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAttrMap_GetString(t *testing.T) {
	tests := []struct {
		name    string
		a       AttrMap
		key     string
		want    string
		wantErr bool
	}{
		{name: "string", a: AttrMap{"type": "test"}, key: "type", want: "test"},
		{name: "missing", a: AttrMap{}, key: "type"},
		{name: "wrong type", a: AttrMap{"type": 1}, key: "type", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.GetString(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("AttrMap.GetString() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("AttrMap.GetString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAttrMap_GetBool(t *testing.T) {
	a := AttrMap{"hidden": true, "type": "test"}

	if got, err := a.GetBool("hidden"); err != nil || !got {
		t.Errorf("AttrMap.GetBool() = %v, %v, want true, nil", got, err)
	}
	if _, err := a.GetBool("type"); !errors.Is(err, ErrInvalidType) {
		t.Errorf("AttrMap.GetBool() error = %v, want %v", err, ErrInvalidType)
	}
}

func TestAttrMap_MergeClone(t *testing.T) {
	a := AttrMap{"type": "test"}

	clone := a.Clone()
	clone.Add("weight", 3)

	if _, ok := a.Get("weight"); ok {
		t.Errorf("AttrMap.Clone() shares storage with its source")
	}

	a.Merge(clone)
	if !a.Equal(AttrMap{"type": "test", "weight": 3}) {
		t.Errorf("AttrMap.Merge() = %+v, want %+v", a, AttrMap{"type": "test", "weight": 3})
	}
}

func TestAttrMap_Equal(t *testing.T) {
	var nilMap AttrMap

	tests := []struct {
		name  string
		a     AttrMap
		other AttrMap
		want  bool
	}{
		{name: "equal", a: AttrMap{"type": "test"}, other: AttrMap{"type": "test"}, want: true},
		{name: "nil vs empty", a: nilMap, other: AttrMap{}, want: true},
		{name: "differing values", a: AttrMap{"type": "test"}, other: AttrMap{"type": "prod"}},
		{name: "differing keys", a: AttrMap{"type": "test"}, other: AttrMap{"kind": "test"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.other); got != tt.want {
				t.Errorf("AttrMap.Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
