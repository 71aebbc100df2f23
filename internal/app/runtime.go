package app

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"
)

// testModeEnv makes cmd/advisor and cmd/worker return from main before they
// dial Postgres, Redis or the LLM provider. internal/testing/guard sets it.
const testModeEnv = "ADVISOR_TEST_MODE"

var (
	testMode     atomic.Bool
	testModeRead sync.Once
)

func readTestMode() {
	on, err := strconv.ParseBool(os.Getenv(testModeEnv))
	testMode.Store(err == nil && on)
}

// InTestMode reports whether the binaries should skip backend connections.
// The variable is read on first use; values are parsed with strconv.ParseBool.
func InTestMode() bool {
	testModeRead.Do(readTestMode)
	return testMode.Load()
}

// RefreshTestMode re-reads ADVISOR_TEST_MODE, for tests that change it.
func RefreshTestMode() {
	testModeRead.Do(func() {})
	readTestMode()
}
