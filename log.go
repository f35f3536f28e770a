package plcp

import (
	"fmt"

	"github.com/golang/glog"
)

var logLevel = 2

// InitLoggers sets how verbose Log is. 1 only reports errors, 2 adds
// progress and 3 adds debugging output.
func InitLoggers(lvl int) {
	if lvl < 1 {
		lvl = 1
	}
	logLevel = lvl
}

func Log(lvl int, format string, args ...interface{}) {
	if lvl > logLevel {
		return
	}
	msg := fmt.Sprintf(format, args...)
	switch lvl {
	case 1:
		glog.ErrorDepth(1, msg)
	default:
		glog.InfoDepth(1, msg)
	}
}
