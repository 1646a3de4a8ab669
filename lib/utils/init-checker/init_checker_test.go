package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type stub interface{ Name() string }

type stubImpl struct{}

func (s *stubImpl) Name() string { return "stub" }

func TestCheckInit(t *testing.T) {
	t.Run(`all set`, func(t *testing.T) {
		require.NotPanics(t, func() {
			CheckInit("store", &stubImpl{}, "limit", 10)
		})
	})
	t.Run(`nil interface`, func(t *testing.T) {
		var value stub
		require.Panics(t, func() { CheckInit("store", value) })
	})
	t.Run(`typed nil`, func(t *testing.T) {
		var ptr *stubImpl
		var value stub = ptr
		require.Panics(t, func() { CheckInit("store", value) })
	})
	t.Run(`odd pairs`, func(t *testing.T) {
		require.Panics(t, func() { CheckInit("store") })
	})
}
