package utils

import (
	"log"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// StartSystemMetrics samples CPU and memory usage into the prometheus gauges
// at the given interval. Runs until the process exits.
func StartSystemMetrics(interval time.Duration) {
	go func() {
		for {
			percentage, err := cpu.Percent(time.Second, false)
			if err != nil {
				log.Printf("Error getting CPU usage: %v", err)
			} else if len(percentage) > 0 {
				CPUUsage.Set(percentage[0])
			}

			vm, err := mem.VirtualMemory()
			if err != nil {
				log.Printf("Error getting memory usage: %v", err)
			} else {
				MemoryUsage.Set(vm.UsedPercent)
			}

			time.Sleep(interval)
		}
	}()
}
