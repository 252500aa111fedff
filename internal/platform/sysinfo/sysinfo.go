package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// SysInfo describes the machine a benchmark ran on.
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}

// Collect reads host, CPU and memory details. Fields that cannot be read
// fall back to what the Go runtime knows.
func Collect() SysInfo {
	info := SysInfo{
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		CPU:      fmt.Sprintf("%d logical CPUs", runtime.NumCPU()),
		RAM:      "unknown",
	}

	if h, err := host.Info(); err == nil && h.Platform != "" {
		info.Platform = h.Platform + " " + h.PlatformVersion
	}
	if c, err := cpu.Info(); err == nil && len(c) > 0 && c[0].ModelName != "" {
		info.CPU = c[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.RAM = fmt.Sprintf("%d GB", vm.Total/1024/1024/1024)
	}
	return info
}

func (s SysInfo) String() string {
	return fmt.Sprintf("platform=%s cpu=%q ram=%s", s.Platform, s.CPU, s.RAM)
}
