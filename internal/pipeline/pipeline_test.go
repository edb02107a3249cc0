// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package pipeline_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/halunder/corpus/internal/llm"
)

// stubService scripts the understanding service for stage tests.
type stubService struct {
	enabled bool
	reply   string
	err     error

	calls    int
	lastUser string
	lastOpts llm.Options
}

func (s *stubService) Enabled() bool { return s.enabled }

func (s *stubService) Complete(_ context.Context, _, user string, opts llm.Options) (string, error) {
	s.calls++
	s.lastUser = user
	s.lastOpts = opts
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
