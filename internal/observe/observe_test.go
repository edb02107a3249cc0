// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package observe_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halunder/corpus/internal/observe"
)

func TestRing_RecordAndSnapshot(t *testing.T) {
	ring := observe.NewRing(10)

	ring.Record("first", observe.LevelInfo)
	ring.Record("second", observe.LevelError)

	events := ring.Snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, "first", events[0].Message)
	assert.Equal(t, observe.LevelInfo, events[0].Level)
	assert.Equal(t, "second", events[1].Message)
	assert.Equal(t, observe.LevelError, events[1].Level)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestRing_EvictsOldest(t *testing.T) {
	ring := observe.NewRing(3)

	for i := 1; i <= 5; i++ {
		ring.Record(fmt.Sprintf("event %d", i), observe.LevelInfo)
	}

	events := ring.Snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, "event 3", events[0].Message)
	assert.Equal(t, "event 5", events[2].Message)
}

func TestRing_SnapshotIsCopy(t *testing.T) {
	ring := observe.NewRing(4)
	ring.Record("only", observe.LevelInfo)

	events := ring.Snapshot()
	events[0].Message = "mutated"

	assert.Equal(t, "only", ring.Snapshot()[0].Message)
}
