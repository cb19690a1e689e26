// Package sysmon samples system-wide CPU and memory usage and the resident
// memory of the current process.
package sysmon

import (
	"context"
	"os"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats is one snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // system-wide, 0..100
	MemPercent float64 // system-wide, 0..100
	RSS        uint64  // resident bytes of this process
}

var (
	selfOnce sync.Once
	self     *process.Process
)

func currentProcess(ctx context.Context) *process.Process {
	selfOnce.Do(func() {
		p, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
		if err == nil {
			self = p
		}
	})
	return self
}

// Sample is SampleContext with a background context.
func Sample() Stats {
	return SampleContext(context.Background())
}

// SampleContext collects one snapshot. CPU usage is the delta since the
// previous call (interval 0). Readings that fail are left at zero.
func SampleContext(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
	}
	if p := currentProcess(ctx); p != nil {
		if info, err := p.MemoryInfoWithContext(ctx); err == nil && info != nil {
			s.RSS = info.RSS
		}
	}
	return s
}
