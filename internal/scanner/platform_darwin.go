//go:build darwin

package scanner

import (
	"os"
	"syscall"
	"time"
)

// accessTime returns the last access time from FileInfo (macOS).
func accessTime(info os.FileInfo) time.Time {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec)
	}
	return info.ModTime()
}
