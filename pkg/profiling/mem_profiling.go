package profiling

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"
)

var pprofWriteHeapProfile = pprof.WriteHeapProfile
var memProfilingInterval = 30 * time.Second

// DoMemProfiling periodically snapshots the heap profile to filePath
// and returns a function that writes one snapshot on demand.
func DoMemProfiling(filePath string) (write func()) {
	write = func() {
		f, err := osCreate(filePath)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)
			return
		}
		defer func() {
			_ = f.Close()
		}()
		if err := pprofWriteHeapProfile(f); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "could not write memory profile: %v\n", err)
		}
	}
	go func() {
		for {
			time.Sleep(memProfilingInterval)
			write()
		}
	}()
	return write
}
