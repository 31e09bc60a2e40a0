//go:build !linux && !darwin

package sysinfo

import (
	"errors"
	"runtime"
	"time"
)

const platformDesktop = ""

var errUnsupported = errors.New("not supported on " + runtime.GOOS)

var packageManagers []packageManager

func (p *Provider) osName() (string, bool) {
	return runtime.GOOS, true
}

func (p *Provider) kernel() (string, bool) { return "", false }

func bootDuration() (time.Duration, error) { return 0, errUnsupported }

func (p *Provider) memoryUsage() (used, total uint64, err error) { return 0, 0, errUnsupported }

func diskUsage(string) (used, total uint64, err error) { return 0, 0, errUnsupported }

func (p *Provider) cpu() (string, bool) { return "", false }

func (p *Provider) resolution() (string, bool) { return "", false }

func (p *Provider) windowManager() (string, bool) { return "", false }
