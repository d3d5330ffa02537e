// Package profile provides optional runtime profiling for the tacit command.
//
// Profiling integrates [github.com/pkg/profile] and is compiled in only when
// building with the "pprof" build tag:
//
//	go build -tags pprof .
//	tacit --pprof-mode=cpu --pprof-dir=/tmp/prof check main.tc
//
// Without the tag, [Enabled] is false, [Modes] is empty and every
// [Profiler] starts a no-op. Start and Stop are always safe to call.
//
// Supported modes with the tag: allocs, block, clock, cpu, goroutine, heap,
// mem, mutex, thread, trace.
package profile
