package bench

import (
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// HostInfo — описание машины, на которой выполнялся бенчмарк.
type HostInfo struct {
	Platform string
	CPU      string
	Cores    int
	Memory   string
}

// DescribeHost собирает сведения о машине; недоступные поля остаются пустыми.
func DescribeHost() HostInfo {
	info := HostInfo{Platform: runtime.GOOS, Cores: runtime.NumCPU()}
	if h, err := host.Info(); err == nil && h.Platform != "" {
		info.Platform = fmt.Sprintf("%s %s", h.Platform, h.PlatformVersion)
	}
	if c, err := cpu.Info(); err == nil && len(c) > 0 {
		info.CPU = c[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.Memory = humanize.IBytes(vm.Total)
	}
	return info
}

func (h HostInfo) String() string {
	return fmt.Sprintf("%s, %s, %d cores, %s RAM", h.Platform, h.CPU, h.Cores, h.Memory)
}
