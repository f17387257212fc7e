package jedna

import (
	"fmt"
	"log"
	"os"
)

// NewFileLogger builds a logger writing to /tmp/<name>_log.txt, in the
// teacher's style (uknow.CreateFileLogger) adapted to never install itself
// as a package-level default — every long-lived component takes its logger
// explicitly (§9 "Global mutable state"), so there is no setAsDefault flag
// here.
func NewFileLogger(name string) *log.Logger {
	fileName := fmt.Sprintf("/tmp/%s_log.txt", name)
	f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		log.Fatalf("jedna: failed to open/create log file: %s", fileName)
	}
	return log.New(f, name+"|", log.Ltime|log.Lshortfile)
}
