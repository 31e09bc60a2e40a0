//go:build linux || darwin

package sysinfo

import (
	"golang.org/x/sys/unix"
)

func (p *Provider) kernel() (string, bool) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", false
	}
	release := unix.ByteSliceToString(u.Release[:])
	return release, release != ""
}

func diskUsage(path string) (used, total uint64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0, err
	}
	bsize := uint64(st.Bsize)
	total = st.Blocks * bsize
	free := uint64(st.Bfree) * bsize
	return total - min(free, total), total, nil
}
