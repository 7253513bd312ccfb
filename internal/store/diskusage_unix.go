//go:build linux || darwin

package store

import "golang.org/x/sys/unix"

// diskFree reports the free bytes available to unprivileged writers on the
// filesystem holding path.
func diskFree(path string) (int64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}

	return int64(st.Bavail) * int64(st.Bsize), nil
}
