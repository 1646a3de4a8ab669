package lock

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	ctx := context.Background()

	t.Run(`busy key without wait`, func(t *testing.T) {
		inner := false
		ok, err := WithDelay(ctx, "busy", 0, func() error {
			require.True(t, IsHeld("busy"))
			inner, _ = WithDelay(ctx, "busy", 0, func() error { return nil })
			return nil
		})
		require.NoError(t, err)
		require.True(t, ok)
		require.False(t, inner)
		require.False(t, IsHeld("busy"))
	})

	t.Run(`waits for release`, func(t *testing.T) {
		started := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = WithDelay(ctx, "wait", 0, func() error {
				close(started)
				time.Sleep(50 * time.Millisecond)
				return nil
			})
		}()
		<-started
		ok, err := WithDelay(ctx, "wait", time.Second, func() error { return nil })
		require.NoError(t, err)
		require.True(t, ok)
		<-done
	})

	t.Run(`timeout`, func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			_, _ = WithDelay(ctx, "timeout", 0, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		ok, err := WithDelay(ctx, "timeout", 20*time.Millisecond, func() error { return nil })
		require.NoError(t, err)
		require.False(t, ok)
		close(release)
	})

	t.Run(`error returned and panic releases`, func(t *testing.T) {
		ok, err := WithDelay(ctx, "err", 0, func() error { return errors.New("сбой") })
		require.True(t, ok)
		require.EqualError(t, err, "сбой")

		require.Panics(t, func() {
			_, _ = WithDelay(ctx, "err", 0, func() error { panic("boom") })
		})
		require.False(t, IsHeld("err"))
	})
}
