/*
Package osrelease reads the os-release(5) file that identifies a Linux
distribution.
*/
package osrelease

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// Paths are tried in order by Read.
var Paths = []string{"/etc/os-release", "/usr/lib/os-release"}

// Parse reads KEY=value lines. Quotes around values are removed; comments,
// blank lines and lines without "=" are skipped. The first occurrence of a
// key wins.
func Parse(r io.Reader) map[string]string {
	kv := make(map[string]string)
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
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

// Read parses the first readable file in Paths.
func Read() (map[string]string, error) {
	var errs []error
	for _, path := range Paths {
		f, err := os.Open(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		kv := Parse(f)
		f.Close()
		return kv, nil
	}
	return nil, errors.Join(errs...)
}

// PrettyName returns PRETTY_NAME, else "NAME VERSION_ID".
func PrettyName(kv map[string]string) (string, bool) {
	if name := kv["PRETTY_NAME"]; name != "" {
		return name, true
	}
	name := strings.TrimSpace(kv["NAME"] + " " + kv["VERSION_ID"])
	return name, name != ""
}
