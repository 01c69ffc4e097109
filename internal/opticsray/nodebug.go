//go:build !debug
// +build !debug

package opticsray

func DebugLog(format string, args ...interface{}) {}

func DebugLogOnce(format string, args ...interface{}) {}
