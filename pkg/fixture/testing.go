// pkg/fixture/testing.go
package fixture

import (
	"testing"

	"github.com/rs/zerolog"
)

// NewTest returns a fixture on a fresh t.TempDir that is stopped when the
// test finishes. Lifecycle events are logged through t.Log.
func NewTest(t testing.TB, opts ...Option) *Fixture {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	f, err := New(t.TempDir(), append([]Option{WithLogger(logger)}, opts...)...)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	t.Cleanup(func() {
		if err := f.Stop(); err != nil {
			t.Errorf("fixture stop: %v", err)
		}
	})
	return f
}
