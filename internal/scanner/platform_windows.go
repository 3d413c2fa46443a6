//go:build windows

package scanner

import (
	"os"
	"syscall"
	"time"
)

// accessTime returns the last access time from FileInfo (Windows).
func accessTime(info os.FileInfo) time.Time {
	if stat, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, stat.LastAccessTime.Nanoseconds())
	}
	return info.ModTime()
}
