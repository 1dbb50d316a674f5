// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package saslif

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every *ConfigError, so callers can test
// with errors.Is(err, ErrInvalidConfig).
var ErrInvalidConfig = errors.New("saslif: invalid configuration")

// ConfigError reports a malformed SimParams, ParameterMesh or forcing series.
// It is always returned before any simulation step has run.
type ConfigError struct {
	// Field is the name of the offending parameter
	Field string

	// Msg describes what is wrong with it
	Msg string
}

func (ce *ConfigError) Error() string {
	return fmt.Sprintf("saslif: invalid %s: %s", ce.Field, ce.Msg)
}

func (ce *ConfigError) Unwrap() error { return ErrInvalidConfig }

func configErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Cell is a mesh coordinate: X indexes Axis 1 and Y indexes Axis 2.
type Cell struct {
	X, Y int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// CapacityWarning reports that a cell fired more spikes than the SpikeLog
// capacity allows.  The first SpikeCap spikes are kept; Dropped later ones
// were counted but not recorded.
type CapacityWarning struct {
	Cell    Cell
	Dropped int
}

func (cw CapacityWarning) String() string {
	return fmt.Sprintf("cell %v exceeded spike capacity: %d spikes dropped", cw.Cell, cw.Dropped)
}

// InstabilityWarning reports that a cell's state became non-finite
// (NaN or Inf).  The cell was reset to rest and frozen from Step onward.
type InstabilityWarning struct {
	Cell Cell
	Step int
}

func (iw InstabilityWarning) String() string {
	return fmt.Sprintf("cell %v diverged to non-finite state by step %d", iw.Cell, iw.Step)
}

// Warnings collects the non-fatal, per-cell problems found during a run.
type Warnings struct {
	Capacity    []CapacityWarning
	Instability []InstabilityWarning
}

// Len returns the total number of warnings
func (ws *Warnings) Len() int {
	return len(ws.Capacity) + len(ws.Instability)
}

// Err returns nil if there are no warnings, and otherwise an error listing
// all of them, for callers that prefer to fail loudly.
func (ws *Warnings) Err() error {
	if ws.Len() == 0 {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "saslif: %d cell warnings:", ws.Len())
	for _, cw := range ws.Capacity {
		fmt.Fprintf(&b, "\n\t%v", cw)
	}
	for _, iw := range ws.Instability {
		fmt.Fprintf(&b, "\n\t%v", iw)
	}
	return errors.New(b.String())
}
