package service

import (
	"context"
	"testing"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporterPoolSharesWhileHeld(t *testing.T) {
	pool := newExporterPool[string](func() *ExportService {
		return NewExportService(&memorySaver{}, logger.Nop(), ExportOptions{DisableSettle: true})
	})

	first, releaseFirst := pool.acquire("card")
	second, releaseSecond := pool.acquire("card")
	other, releaseOther := pool.acquire("other")
	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, pool.len())

	releaseFirst()
	releaseFirst()
	assert.Equal(t, 2, pool.len(), "a held entry stays")

	releaseSecond()
	releaseOther()
	assert.Zero(t, pool.len())

	again, release := pool.acquire("card")
	defer release()
	assert.NotSame(t, first, again)
}

func TestExporterPoolKeepsGuardAcrossHolders(t *testing.T) {
	pool := newExporterPool[int64](func() *ExportService {
		return NewExportService(&memorySaver{}, logger.Nop(), ExportOptions{DisableSettle: true})
	})
	v := &fakeVisual{gate: make(chan struct{})}
	ctx := context.Background()

	running, releaseRunning := pool.acquire(1)
	done := make(chan error, 1)
	go func() {
		defer releaseRunning()
		_, err := running.GetBlob(ctx, v, ExportRequest{Format: FormatPNG})
		done <- err
	}()
	require.Eventually(t, running.Pending, time.Second, time.Millisecond)

	second, releaseSecond := pool.acquire(1)
	_, err := second.GetBlob(ctx, v, ExportRequest{Format: FormatPNG})
	releaseSecond()
	assert.ErrorIs(t, err, errorz.ErrExportInProgress)

	close(v.gate)
	require.NoError(t, <-done)
	assert.Zero(t, pool.len())
}
