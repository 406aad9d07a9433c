// Package memprobe reads the resident memory of the running process.
package memprobe

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// Probe implements domain.MemoryProbe with gopsutil.
type Probe struct {
	proc *process.Process
}

// New returns a probe for the current process.
func New() (*Probe, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("opening process: %w", err)
	}
	return &Probe{proc: p}, nil
}

func (p *Probe) RSS() (uint64, error) {
	info, err := p.proc.MemoryInfo()
	if err != nil {
		return 0, fmt.Errorf("reading memory info: %w", err)
	}
	return info.RSS, nil
}
