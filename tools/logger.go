package tools

import (
	"fmt"
	"log"
	"time"
)

var isEnabled = true
var printTimestamp = true

func EnableLogger() {
	isEnabled = true
}

func DisableLogger() {
	isEnabled = false
}

func EnableLoggerTimestamp() {
	printTimestamp = true
}

func DisableLoggerTimestamp() {
	printTimestamp = false
}

// User facing progress messages, silenced by -silent
func LogOutput(val ...interface{}) {
	if !isEnabled {
		return
	}
	msg := fmt.Sprintln(val...)
	if printTimestamp {
		msg = "[" + time.Now().Format("2006-01-02 15.04:05.000") + "] " + msg
	}
	log.Print(msg)
}
