package telemetry_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/telemetry"
)

type flushRecorder struct {
	mu     sync.Mutex
	chunks []string
}

func (r *flushRecorder) record(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunks = append(r.chunks, string(data))
}

func (r *flushRecorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.chunks...)
}

func TestBatcher_FlushesOnSize(t *testing.T) {
	rec := &flushRecorder{}
	b := telemetry.NewBatcher(8, time.Hour, rec.record)

	_, err := b.Write([]byte("abcd"))
	require.NoError(t, err)
	assert.Empty(t, rec.get())

	_, err = b.Write([]byte("efgh"))
	require.NoError(t, err)
	assert.Equal(t, []string{"abcdefgh"}, rec.get())

	require.NoError(t, b.Close())
}

func TestBatcher_FlushesOnTime(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &flushRecorder{}
		b := telemetry.NewBatcher(0, 0, rec.record)

		_, err := b.Write([]byte("line\n"))
		require.NoError(t, err)

		time.Sleep(telemetry.DefaultTimeLimit / 2)
		synctest.Wait()
		assert.Empty(t, rec.get())

		time.Sleep(telemetry.DefaultTimeLimit)
		synctest.Wait()
		assert.Equal(t, []string{"line\n"}, rec.get())

		require.NoError(t, b.Close())
	})
}

func TestBatcher_Close(t *testing.T) {
	rec := &flushRecorder{}
	b := telemetry.NewBatcher(0, time.Hour, rec.record)

	_, err := b.Write([]byte("pending"))
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.Equal(t, []string{"pending"}, rec.get())

	_, err = b.Write([]byte("late"))
	require.Error(t, err)
	require.NoError(t, b.Close())
}
