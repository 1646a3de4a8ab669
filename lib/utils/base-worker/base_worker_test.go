package baseworker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunOnce(t *testing.T) {
	ctx := context.Background()
	worker := NewInstance("TestWorker", "@every 1m")

	t.Run(`overlapping run is skipped`, func(t *testing.T) {
		outer, inner := 0, 0
		worker.RunOnce(ctx, func(ctx context.Context) {
			outer++
			worker.RunOnce(ctx, func(ctx context.Context) {
				inner++
			})
		})
		require.Equal(t, 1, outer)
		require.Equal(t, 0, inner)
	})

	t.Run(`panic is recovered and lock released`, func(t *testing.T) {
		worker.RunOnce(ctx, func(ctx context.Context) {
			panic("boom")
		})
		calls := 0
		worker.RunOnce(ctx, func(ctx context.Context) {
			calls++
		})
		require.Equal(t, 1, calls)
	})

	t.Run(`bad spec`, func(t *testing.T) {
		err := NewInstance("BadWorker", "every minute").Run(ctx, func(ctx context.Context) {})
		require.Error(t, err)
	})
}
