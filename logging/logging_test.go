// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		lvl slog.Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if l := ParseLevel(tt.in); l != tt.lvl {
			t.Errorf("ParseLevel(%q): %v, want %v\n", tt.in, l, tt.lvl)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var b bytes.Buffer
	lg := NewLogger("info", &b)
	lg.Debug("hidden")
	lg.Info("shown", "cells", 4)
	out := b.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level:\n%s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "cells=4") {
		t.Errorf("info message missing:\n%s", out)
	}

	b.Reset()
	lg = NewLogger("trace", &b)
	lg.Log(context.Background(), LevelTrace, "step")
	if !strings.Contains(b.String(), "level=TRACE") {
		t.Errorf("trace level not labeled:\n%s", b.String())
	}
}
