package sysinfo

import (
	"os"
	"time"

	"github.com/jorgegonzalez/rice/pkg/osrelease"
	"golang.org/x/sys/unix"
)

const platformDesktop = ""

var packageManagers = []packageManager{
	{name: "dpkg", args: []string{"-l"}, count: countPrefix("ii")},
	{name: "rpm", args: []string{"-qa"}, count: countLines},
	{name: "pacman", args: []string{"-Q"}, count: countLines},
}

func (p *Provider) osName() (string, bool) {
	if kv, err := osrelease.Read(); err == nil {
		if name, ok := osrelease.PrettyName(kv); ok {
			return name, true
		}
	}
	return "Linux", true
}

func bootDuration() (time.Duration, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, err
	}
	return time.Duration(info.Uptime) * time.Second, nil
}

func (p *Provider) memoryUsage() (used, total uint64, err error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	return parseMeminfo(f)
}

func (p *Provider) cpu() (string, bool) {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return "", false
	}
	defer f.Close()
	return parseCPUInfo(f)
}

func (p *Provider) resolution() (string, bool) {
	out, err := p.run("xrandr", "--current")
	if err != nil {
		return "", false
	}
	return parseXrandr(out)
}

func (p *Provider) windowManager() (string, bool) {
	if _, ok := p.env("GNOME_DESKTOP_SESSION_ID"); ok {
		return "Mutter", true
	}
	if _, ok := p.env("KDE_FULL_SESSION"); ok {
		return "KWin", true
	}
	if _, ok := p.env("HYPRLAND_INSTANCE_SIGNATURE"); ok {
		return "Hyprland", true
	}
	if _, ok := p.env("SWAYSOCK"); ok {
		return "sway", true
	}
	out, err := p.run("pgrep", "-l", "i3|awesome|bspwm|dwm|openbox|fluxbox|xfwm4")
	if err != nil {
		return "", false
	}
	for _, fields := range splitFields(out) {
		if len(fields) > 1 {
			return fields[1], true
		}
	}
	return "", false
}
