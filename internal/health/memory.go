package health

import (
	"runtime"

	"github.com/prometheus/procfs"
)

// MemorySnapshot holds raw process memory counters in bytes.
type MemorySnapshot struct {
	HeapUsed  uint64
	HeapTotal uint64
	RSS       uint64
	External  uint64
}

// ReadMemory samples the Go runtime. RSS comes from /proc when available
// and falls back to the memory obtained from the OS by the runtime.
func ReadMemory() MemorySnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	snap := MemorySnapshot{
		HeapUsed:  ms.HeapAlloc,
		HeapTotal: ms.HeapSys,
		RSS:       ms.Sys,
	}
	if ms.Sys > ms.HeapSys {
		snap.External = ms.Sys - ms.HeapSys
	}

	if rss, ok := residentMemory(); ok {
		snap.RSS = rss
	}
	return snap
}

func residentMemory() (uint64, bool) {
	proc, err := procfs.Self()
	if err != nil {
		return 0, false
	}
	stat, err := proc.Stat()
	if err != nil {
		return 0, false
	}
	rss := stat.ResidentMemory()
	if rss <= 0 {
		return 0, false
	}
	return uint64(rss), true
}
