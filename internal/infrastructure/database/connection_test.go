package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndPing(t *testing.T) {
	gdb, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	assert.NoError(t, Ping(context.Background(), gdb))
}

func TestPing_Nil(t *testing.T) {
	assert.Error(t, Ping(context.Background(), nil))
}

func TestFilteredLogger_DropsSchemaProbes(t *testing.T) {
	l := &filteredLogger{}
	assert.NotPanics(t, func() {
		l.Printf("SELECT VERSION()")
		l.Printf("[error] %s", "boom")
		l.Printf("SLOW SQL >= 200ms")
	})
}

func TestWaitReady(t *testing.T) {
	calls := 0
	err := WaitReady(context.Background(), "thing", time.Second, func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	err = WaitReady(context.Background(), "thing", 0, func(context.Context) error { return errors.New("down") })
	assert.ErrorContains(t, err, "thing not ready")
}
