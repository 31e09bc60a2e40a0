// Package sysinfo collects the values shown in the info block.
package sysinfo

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/jorgegonzalez/rice"
)

// DefaultTimeout bounds every external command the provider runs.
const DefaultTimeout = 2 * time.Second

// Options configures a Provider.
type Options struct {
	// Commands maps field keys to shell commands. A command shadows the
	// builtin field of the same name.
	Commands map[string]string
	Timeout  time.Duration
	// DiskPath is the filesystem reported by the disk field; default "/".
	DiskPath string
	Lookup   rice.LookupFunc
	Runner   Runner
	Logger   log.Interface
}

// Provider resolves field values on demand and caches them for its
// lifetime. It implements rice.FieldSource and rice.UsageSource.
type Provider struct {
	opts Options

	mu     sync.Mutex
	fields map[string]cachedField
	usage  map[string]cachedUsage
	host   *cachedField
}

type cachedField struct {
	value string
	ok    bool
}

type cachedUsage struct {
	used, total uint64
	ok          bool
}

var builtins = map[string]func(*Provider) (string, bool){
	rice.FieldUserHost: (*Provider).userHost,
	"os":               (*Provider).osName,
	"hostname":         (*Provider).hostname,
	"kernel":           (*Provider).kernel,
	"uptime":           (*Provider).uptime,
	"packages":         (*Provider).packages,
	"shell":            (*Provider).shell,
	"resolution":       (*Provider).resolution,
	"de":               (*Provider).desktop,
	"wm":               (*Provider).windowManager,
	"terminal":         (*Provider).terminal,
	"cpu":              (*Provider).cpu,
	rice.FieldMemory:   (*Provider).memory,
	rice.FieldDisk:     (*Provider).disk,
	rice.FieldColors:   (*Provider).colors,
}

// Builtins returns the keys of the builtin fields.
func Builtins() []string {
	keys := make([]string, 0, len(builtins))
	for k := range builtins {
		keys = append(keys, k)
	}
	return keys
}

func New(opts Options) *Provider {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.DiskPath == "" {
		opts.DiskPath = "/"
	}
	if opts.Lookup == nil {
		opts.Lookup = os.LookupEnv
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Log
	}
	return &Provider{
		opts:   opts,
		fields: make(map[string]cachedField),
		usage:  make(map[string]cachedUsage),
	}
}

// Field returns the value of key. Unknown keys and fields that cannot be
// determined on this system report ok=false.
func (p *Provider) Field(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.fields[key]; ok {
		return c.value, c.ok
	}
	value, ok := p.collect(key)
	p.fields[key] = cachedField{value, ok}
	return value, ok
}

// Usage returns the numeric used/total bytes of the memory and disk fields.
func (p *Provider) Usage(key string) (used, total uint64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u := p.usageLocked(key)
	return u.used, u.total, u.ok
}

func (p *Provider) collect(key string) (string, bool) {
	if command, ok := p.opts.Commands[key]; ok {
		return p.custom(key, command)
	}
	fn, ok := builtins[key]
	if !ok {
		p.opts.Logger.WithField("field", key).Debug("unknown field")
		return "", false
	}
	return fn(p)
}

func (p *Provider) usageLocked(key string) cachedUsage {
	if u, ok := p.usage[key]; ok {
		return u
	}
	var (
		used, total uint64
		err         error
	)
	switch key {
	case rice.FieldMemory:
		used, total, err = p.memoryUsage()
	case rice.FieldDisk:
		used, total, err = diskUsage(p.opts.DiskPath)
	default:
		return cachedUsage{}
	}
	u := cachedUsage{used: used, total: total, ok: err == nil && total > 0}
	if err != nil {
		p.opts.Logger.WithError(err).WithField("field", key).Debug("usage unavailable")
	}
	p.usage[key] = u
	return u
}

// run executes name with the provider's timeout and returns its stdout.
func (p *Provider) run(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.opts.Timeout)
	defer cancel()
	return p.opts.Runner.Run(ctx, name, args...)
}

func (p *Provider) env(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := p.opts.Lookup(k); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func (p *Provider) custom(key, command string) (string, bool) {
	name, args := ShellCommand(command)
	out, err := p.run(name, args...)
	if err != nil {
		p.opts.Logger.WithError(err).WithFields(log.Fields{
			"field":   key,
			"command": command,
		}).Debug("custom command failed")
		return "", false
	}
	value := Clean(out)
	return value, value != ""
}

func (p *Provider) userHost() (string, bool) {
	user, ok := p.env("USER", "USERNAME")
	if !ok {
		user = "unknown"
	}
	host, ok := p.hostname()
	if !ok {
		host = "unknown"
	}
	return user + "@" + host, true
}

func (p *Provider) hostname() (string, bool) {
	if p.host == nil {
		name, err := os.Hostname()
		p.host = &cachedField{value: name, ok: err == nil && name != ""}
	}
	return p.host.value, p.host.ok
}

func (p *Provider) uptime() (string, bool) {
	d, err := bootDuration()
	if err != nil {
		p.opts.Logger.WithError(err).Debug("uptime unavailable")
		return "", false
	}
	return FormatUptime(d), true
}

func (p *Provider) shell() (string, bool) {
	path, ok := p.env("SHELL")
	if !ok {
		return "", false
	}
	if out, err := p.run(path, "--version"); err == nil {
		if line := Clean(out); line != "" {
			return line, true
		}
	}
	return filepath.Base(path), true
}

func (p *Provider) terminal() (string, bool) {
	return p.env("TERM_PROGRAM", "TERMINAL_EMULATOR", "TERM")
}

func (p *Provider) desktop() (string, bool) {
	if de, ok := p.env("XDG_CURRENT_DESKTOP", "DESKTOP_SESSION", "GDMSESSION"); ok {
		return de, true
	}
	return platformDesktop, platformDesktop != ""
}

func (p *Provider) packages() (string, bool) {
	for _, pm := range packageManagers {
		out, err := p.run(pm.name, pm.args...)
		if err != nil {
			continue
		}
		if n := pm.count(out); n > 0 {
			return FormatPackages(n, pm.name), true
		}
	}
	return "", false
}

func (p *Provider) memory() (string, bool) {
	u := p.usageLocked(rice.FieldMemory)
	if !u.ok {
		return "", false
	}
	return FormatUsage(u.used, u.total), true
}

func (p *Provider) disk() (string, bool) {
	u := p.usageLocked(rice.FieldDisk)
	if !u.ok {
		return "", false
	}
	return FormatUsage(u.used, u.total), true
}

// colors resolves to an empty value; the info block draws the color blocks.
func (p *Provider) colors() (string, bool) {
	return "", true
}
