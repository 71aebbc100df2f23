// Package guard forces test mode for any test binary that imports it.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("ADVISOR_TEST_MODE") == "" {
			_ = os.Setenv("ADVISOR_TEST_MODE", "1")
		}
	})
}
