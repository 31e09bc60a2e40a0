package sysinfo

import (
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const platformDesktop = "Aqua"

var packageManagers = []packageManager{
	{name: "brew", args: []string{"list", "--formula"}, count: countLines},
	{name: "port", args: []string{"installed"}, count: countAfterHeader},
}

func (p *Provider) osName() (string, bool) {
	name, err := p.run("sw_vers", "-productName")
	if err != nil {
		return "macOS", true
	}
	version, _ := p.run("sw_vers", "-productVersion")
	return strings.TrimSpace(strings.TrimSpace(name) + " " + strings.TrimSpace(version)), true
}

func bootDuration() (time.Duration, error) {
	tv, err := unix.SysctlTimeval("kern.boottime")
	if err != nil {
		return 0, err
	}
	return time.Since(time.Unix(tv.Sec, int64(tv.Usec)*1000)), nil
}

func (p *Provider) memoryUsage() (used, total uint64, err error) {
	total, err = unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0, 0, err
	}
	out, err := p.run("vm_stat")
	if err != nil {
		return 0, 0, err
	}
	used, err = parseVMStat(out)
	if err != nil {
		return 0, 0, err
	}
	return min(used, total), total, nil
}

func (p *Provider) cpu() (string, bool) {
	brand, err := unix.Sysctl("machdep.cpu.brand_string")
	if err != nil {
		return "", false
	}
	cores, _ := unix.SysctlUint32("hw.ncpu")
	freq, _ := unix.SysctlUint64("hw.cpufrequency")
	return formatCPU(brand, int(cores), freq/1_000_000)
}

func (p *Provider) resolution() (string, bool) {
	out, err := p.run("system_profiler", "SPDisplaysDataType")
	if err != nil {
		return "", false
	}
	return parseDisplayProfile(out)
}

func (p *Provider) windowManager() (string, bool) {
	return "Quartz Compositor", true
}
