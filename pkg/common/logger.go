package common

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

type Logger interface {
	Log(message string)
	Logf(format string, args ...any)
}

type fileLogger struct {
	mutex      sync.Mutex
	path       string
	fileWriter *bufio.Writer
}

// NewFileLogger logs to the file specified by `path`. If the file is unavailable, writes to the console.
// Safe for concurrent use: request workers log from their own goroutines.
func NewFileLogger(path string) Logger {
	return &fileLogger{
		path: path,
	}
}

func (f *fileLogger) Log(message string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	line := formatLogLine(time.Now(), message)
	if f.fileWriterReady() {
		_, err := f.fileWriter.WriteString(line)
		if err != nil {
			f.logErrorToConsole(err.Error())
			f.logMessageToConsole(line)
		}
		err = f.fileWriter.Flush()
		if err != nil {
			f.logErrorToConsole(err.Error())
		}
	} else {
		f.logMessageToConsole(line)
	}
}

func (f *fileLogger) Logf(format string, args ...any) {
	f.Log(fmt.Sprintf(format, args...))
}

func (f *fileLogger) logErrorToConsole(message string) {
	fmt.Printf("Error: %s. Logging switched to console.\n", message)
}

func (f *fileLogger) logMessageToConsole(message string) {
	fmt.Print(message)
}

func (f *fileLogger) fileWriterReady() bool {
	if f.fileWriter != nil {
		return true
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		f.logErrorToConsole(err.Error())
		return false
	}
	f.fileWriter = bufio.NewWriter(file)
	return true
}

func formatLogLine(t time.Time, message string) string {
	return t.Format("2006-01-02 15:04:05.000") + " " + strings.TrimRight(message, "\n") + "\n"
}
