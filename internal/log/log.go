// Package log provides leveled debug logging shared across the server.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level controls how much diagnostic output is emitted.
type Level int

const (
	Off Level = iota
	Basic
	Detailed
	Trace
	Wire
)

// LevelFromInt clamps an arbitrary integer (e.g. a -v count or config value)
// into a valid Level.
func LevelFromInt(i int) Level {
	switch {
	case i <= 0:
		return Off
	case i >= int(Wire):
		return Wire
	default:
		return Level(i)
	}
}

func (l Level) String() string {
	switch l {
	case Basic:
		return "basic"
	case Detailed:
		return "detailed"
	case Trace:
		return "trace"
	case Wire:
		return "wire"
	default:
		return "off"
	}
}

var (
	mu      sync.Mutex
	current           = Off
	out     io.Writer = os.Stderr
)

// SetLevel sets the global debug level.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// SetOutput redirects log output, primarily for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Logf writes the formatted message when the global level is at or above l.
func Logf(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if current < l || l == Off {
		return
	}
	fmt.Fprintf(out, "[%s] %s\n", l, fmt.Sprintf(format, args...))
}

func Basicf(format string, args ...any)    { Logf(Basic, format, args...) }
func Detailedf(format string, args ...any) { Logf(Detailed, format, args...) }
func Tracef(format string, args ...any)    { Logf(Trace, format, args...) }
