package sysinfo

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

type packageManager struct {
	name  string
	args  []string
	count func(out string) int
}

func countLines(out string) int {
	n := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func countPrefix(prefix string) func(string) int {
	return func(out string) int {
		n := 0
		for _, line := range strings.Split(out, "\n") {
			if strings.HasPrefix(line, prefix) {
				n++
			}
		}
		return n
	}
}

// countAfterHeader counts non-empty lines minus a one-line header.
func countAfterHeader(out string) int {
	return max(countLines(out)-1, 0)
}

// parseKeyValues reads "Key: value" lines. Quotes around values are removed.
func parseKeyValues(r io.Reader, sep string) map[string]string {
	kv := make(map[string]string)
	s := bufio.NewScanner(r)
	for s.Scan() {
		k, v, ok := strings.Cut(s.Text(), sep)
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if _, dup := kv[k]; dup {
			continue
		}
		kv[k] = strings.Trim(strings.TrimSpace(v), `"'`)
	}
	return kv
}

// parseMeminfo returns used and total bytes from /proc/meminfo.
func parseMeminfo(r io.Reader) (used, total uint64, err error) {
	kv := parseKeyValues(r, ":")
	kb := func(key string) (uint64, bool) {
		v, ok := kv[key]
		if !ok {
			return 0, false
		}
		n, err := strconv.ParseUint(strings.TrimSpace(strings.TrimSuffix(v, "kB")), 10, 64)
		return n * 1024, err == nil
	}

	total, ok := kb("MemTotal")
	if !ok || total == 0 {
		return 0, 0, fmt.Errorf("meminfo: missing MemTotal")
	}
	if avail, ok := kb("MemAvailable"); ok {
		return total - min(avail, total), total, nil
	}
	free, _ := kb("MemFree")
	buffers, _ := kb("Buffers")
	cached, _ := kb("Cached")
	return total - min(free+buffers+cached, total), total, nil
}

// parseCPUInfo returns "brand (N cores) @ F MHz" from /proc/cpuinfo.
func parseCPUInfo(r io.Reader) (string, bool) {
	var (
		brand string
		mhz   float64
		cores int
	)
	s := bufio.NewScanner(r)
	for s.Scan() {
		k, v, ok := strings.Cut(s.Text(), ":")
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		switch strings.TrimSpace(k) {
		case "processor":
			cores++
		case "model name", "Hardware", "Model":
			if brand == "" {
				brand = v
			}
		case "cpu MHz":
			if mhz == 0 {
				mhz, _ = strconv.ParseFloat(v, 64)
			}
		}
	}
	return formatCPU(brand, cores, uint64(mhz))
}

func formatCPU(brand string, cores int, mhz uint64) (string, bool) {
	brand = strings.Join(strings.Fields(brand), " ")
	if brand == "" {
		return "", false
	}
	if cores <= 0 {
		return brand, true
	}
	if mhz > 0 {
		return fmt.Sprintf("%s (%d cores) @ %d MHz", brand, cores, mhz), true
	}
	return fmt.Sprintf("%s (%d cores)", brand, cores), true
}

var xrandrMode = regexp.MustCompile(`\b(\d+x\d+)\+\d+\+\d+`)

// parseXrandr returns the mode of the primary output, or of the first
// connected output.
func parseXrandr(out string) (string, bool) {
	var first string
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, " connected") {
			continue
		}
		m := xrandrMode.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if strings.Contains(line, " primary ") {
			return m[1], true
		}
		if first == "" {
			first = m[1]
		}
	}
	return first, first != ""
}

// parseDisplayProfile returns the first "Resolution:" of system_profiler
// SPDisplaysDataType output.
func parseDisplayProfile(out string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		if _, res, ok := strings.Cut(line, "Resolution:"); ok {
			if res = strings.TrimSpace(res); res != "" {
				return res, true
			}
		}
	}
	return "", false
}

var vmStatPageSize = regexp.MustCompile(`page size of (\d+) bytes`)

// parseVMStat returns the bytes in use (active, wired and compressed pages)
// from vm_stat output.
func parseVMStat(out string) (uint64, error) {
	pageSize := uint64(4096)
	if m := vmStatPageSize.FindStringSubmatch(out); m != nil {
		pageSize, _ = strconv.ParseUint(m[1], 10, 64)
	}
	kv := parseKeyValues(strings.NewReader(out), ":")
	var pages uint64
	found := false
	for _, key := range []string{"Pages active", "Pages wired down", "Pages occupied by compressor"} {
		n, err := strconv.ParseUint(strings.TrimSuffix(kv[key], "."), 10, 64)
		if err != nil {
			continue
		}
		pages += n
		found = true
	}
	if !found {
		return 0, fmt.Errorf("vm_stat: no page counts")
	}
	return pages * pageSize, nil
}

func splitFields(out string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(out, "\n") {
		if f := strings.Fields(line); len(f) > 0 {
			rows = append(rows, f)
		}
	}
	return rows
}
