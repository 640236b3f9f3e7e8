// SPDX-License-Identifier: MIT
package treeindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/treeindex/types"
)

type (
	// DecodeOpts defines options for the item decode operation.
	DecodeOpts struct {
		Debug bool

		// Sentinel is the textual parent value marking an item without a
		// parent.
		Sentinel string

		Source io.Reader
		Logger logrus.FieldLogger
	}

	// DecodeOption defines the DecodeOpts functional option type.
	DecodeOption func(*DecodeOpts)
)

const (
	// DefaultSentinel is the default textual root marker.
	DefaultSentinel = "root"

	idKey     = "id"
	parentKey = "parent"
)

// Decoding errors.
var (
	ErrEmptyDecodeSrc   = errors.New("empty item decode source")
	ErrInvalidDecodeSrc = errors.New("invalid item decode source")

	ErrNotItemArray  = errors.New("source is not a JSON array")
	ErrMissingID     = errors.New("item lacks an id")
	ErrMissingParent = errors.New("item lacks a parent reference")
)

// NewDecodeOpts configures the decode operation's DecodeOpts.
func NewDecodeOpts(options ...DecodeOption) *DecodeOpts {
	o := &DecodeOpts{}

	for _, opt := range options {
		opt(o)
	}
	o.Validate()

	return o
}

// Validate populates missing DecodeOpts entries with defaults.
func (o *DecodeOpts) Validate() {
	if o.Sentinel == "" {
		o.Sentinel = DefaultSentinel
	}
	if o.Logger == nil {
		o.Logger = logrus.New()
	}
}

// WithSource configures the decode input.
func WithSource(r io.Reader) DecodeOption {
	return func(o *DecodeOpts) { o.Source = r }
}

// WithSentinel configures the textual root marker; an empty value retains the
// default.
func WithSentinel(sentinel string) DecodeOption {
	return func(o *DecodeOpts) { o.Sentinel = sentinel }
}

// WithDecodeLogger configures the logger option.
func WithDecodeLogger(logger logrus.FieldLogger) DecodeOption {
	return func(o *DecodeOpts) { o.Logger = logger }
}

// WithDecodeDebug configures the debug option.
func WithDecodeDebug(debug bool) DecodeOption {
	return func(o *DecodeOpts) { o.Debug = debug }
}

// DecodeItems transforms a JSON array of item objects into an []Item.
//
// The "id" & "parent" keys are required on every object; any other key is
// retained in the item's attribute bag. A "parent" equal to the configured
// sentinel marks a root item.
func DecodeItems[T Constraint](ctx context.Context, options ...DecodeOption) (items []Item[T], err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrEmptyDecodeSrc) {
			err = fmt.Errorf("%w: %w", ErrInvalidDecodeSrc, err)
		}
	}()

	o := NewDecodeOpts(options...)
	if o.Source == nil {
		err = ErrEmptyDecodeSrc
		return
	}

	dec := json.NewDecoder(o.Source)

	var tok json.Token
	if tok, err = dec.Token(); err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrEmptyDecodeSrc
		}
		return
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		err = fmt.Errorf("%w: starts with %v", ErrNotItemArray, tok)
		return
	}

	items = make([]Item[T], 0)
	for dec.More() {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var raw map[string]json.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return
		}

		var item Item[T]
		if item, err = decodeItem[T](o, raw); err != nil {
			return
		}

		if o.Debug {
			o.Logger.Debugf("decoded item: %+v", item)
		}

		items = append(items, item)
	}

	// Consume the closing delimiter.
	_, err = dec.Token()

	return
}

// decodeItem assembles an Item from a decoded JSON object.
func decodeItem[T Constraint](o *DecodeOpts, raw map[string]json.RawMessage) (item Item[T], err error) {
	idRaw, ok := raw[idKey]
	if !ok {
		err = ErrMissingID
		return
	}
	if err = json.Unmarshal(idRaw, &item.ID); err != nil {
		err = fmt.Errorf(types.ReadErrFmt, idKey, err)
		return
	}

	parentRaw, ok := raw[parentKey]
	if !ok {
		err = fmt.Errorf("(%v) %w", item.ID, ErrMissingParent)
		return
	}

	var sentinel string
	if json.Unmarshal(parentRaw, &sentinel) == nil && sentinel == o.Sentinel {
		item.Parent = Root[T]()
	} else {
		var pid T
		if err = json.Unmarshal(parentRaw, &pid); err != nil {
			err = fmt.Errorf(types.ReadErrFmt, parentKey, err)
			return
		}
		item.Parent = ParentOf(pid)
	}

	for key := range raw {
		if key == idKey || key == parentKey {
			continue
		}

		var val interface{}
		if err = json.Unmarshal(raw[key], &val); err != nil {
			err = fmt.Errorf(types.ReadErrFmt, key, err)
			return
		}
		item.Attrs.Add(key, val)
	}

	return
}
