package main

import (
	"bufio"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

const samplingInterval = 10 * time.Millisecond

var rssBytesFunc = rssBytes

// measurement is the cost of one analysis run.
type measurement struct {
	DurationSeconds float64
	PeakRSSBytes    float64
}

// measure runs fn while sampling resident memory every samplingInterval and
// reports the wall time together with the highest reading observed.
//
// The reading is the resident size of the whole process, so it only
// describes fn when nothing else runs alongside it. With trackMemory false
// only the wall time is measured and PeakRSSBytes stays 0.
func measure(trackMemory bool, fn func() error) (measurement, error) {
	if !trackMemory {
		start := time.Now()
		err := fn()
		return measurement{DurationSeconds: time.Since(start).Seconds()}, err
	}

	baseline := rssBytesFunc()
	peak := baseline

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(samplingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if current := rssBytesFunc(); current > peak {
					peak = current
				}
			case <-stop:
				return
			}
		}
	}()

	start := time.Now()
	err := fn()
	elapsed := time.Since(start).Seconds()
	close(stop)
	wg.Wait()

	return measurement{DurationSeconds: elapsed, PeakRSSBytes: peak}, err
}

func rssBytes() float64 {
	if runtime.GOOS == "linux" {
		if v := rssFromProcStatm(); v > 0 {
			return v
		}
		if v := rssFromProcStatus(); v > 0 {
			return v
		}
	}
	return rssFromPS()
}

func rssFromProcStatm() float64 {
	data, err := os.ReadFile("/proc/self/statm")
	if err != nil {
		return 0
	}
	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return 0
	}
	pages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0
	}
	return float64(pages * uint64(os.Getpagesize()))
}

func rssFromProcStatus() float64 {
	file, err := os.Open("/proc/self/status")
	if err != nil {
		return 0
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if kb, ok := parseStatusKB(scanner.Text(), "VmRSS:"); ok {
			return float64(kb * 1024)
		}
	}
	return 0
}

// parseStatusKB extracts the kB figure of a /proc/<pid>/status line such as
// "VmRSS:     1234 kB".
func parseStatusKB(line, key string) (uint64, bool) {
	if !strings.HasPrefix(line, key) {
		return 0, false
	}
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return 0, false
	}
	kb, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return kb, true
}

func rssFromPS() float64 {
	pid := os.Getpid()
	output, err := exec.Command("ps", "-o", "rss=", "-p", strconv.Itoa(pid)).Output()
	if err != nil {
		return 0
	}
	value := strings.TrimSpace(string(output))
	if value == "" {
		return 0
	}
	kb, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0
	}
	return float64(kb * 1024)
}
