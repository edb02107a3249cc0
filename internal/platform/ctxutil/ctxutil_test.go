// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halunder/corpus/internal/platform/ctxutil"
)

/*
TestRequestID verifies round-tripping the correlation ID through the context.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()

	// Absent: zero value
	assert.Equal(t, "", ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "0195-test-id")
	assert.Equal(t, "0195-test-id", ctxutil.GetRequestID(ctx))
}

/*
TestLogger verifies that a request-scoped logger is stored and retrieved,
and that the default logger is returned when none is attached.
*/
func TestLogger(t *testing.T) {
	ctx := context.Background()

	// Absent: falls back to slog.Default, never nil
	require.NotNil(t, ctxutil.GetLogger(ctx))

	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx = ctxutil.WithLogger(ctx, custom)

	assert.Same(t, custom, ctxutil.GetLogger(ctx))
}
