package bindings

import (
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	traceOnce   sync.Once
	traceLogger hclog.Logger
)

// debugLogger returns the package-wide logger used for METTA_DEBUG_UNIFY
// tracing (spec.md §6), initialized once from the environment.
func debugLogger() hclog.Logger {
	traceOnce.Do(func() {
		if os.Getenv("METTA_DEBUG_UNIFY") != "" {
			traceLogger = hclog.New(&hclog.LoggerOptions{Name: "unify", Level: hclog.Debug})
		} else {
			traceLogger = hclog.NewNullLogger()
		}
	})
	return traceLogger
}
