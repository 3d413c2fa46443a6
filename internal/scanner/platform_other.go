//go:build !linux && !darwin && !windows

package scanner

import (
	"os"
	"time"
)

// accessTime falls back to the modification time on platforms without a
// portable atime.
func accessTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
