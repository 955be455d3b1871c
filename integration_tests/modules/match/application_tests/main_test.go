package matchintegrationtests

import (
	"os"
	"testing"

	"github.com/crease-live/crease-backend/integration_tests/testutils"
)

// TestMain tears down the shared containers after the package's tests run.
func TestMain(m *testing.M) {
	code := m.Run()
	testutils.ShutdownTestEnv()
	os.Exit(code)
}
