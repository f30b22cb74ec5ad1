package jobsuche

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// httptest servers and idle client connections must be gone after the run
	goleak.VerifyTestMain(m)
}
