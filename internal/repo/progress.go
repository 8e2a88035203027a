package repo

import (
	"bytes"
	"io"
	"sync"
)

// NewProgressWriter wraps w for git transport progress. On a terminal the
// carriage returns are kept so counters rewrite a single line; otherwise each
// update becomes its own line.
func NewProgressWriter(w io.Writer, terminal bool) io.Writer {
	if w == nil {
		return io.Discard
	}
	if terminal {
		return w
	}
	return &lineWriter{w: w}
}

type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lineWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := bytes.ReplaceAll(p, []byte("\r\n"), []byte("\n"))
	out = bytes.ReplaceAll(out, []byte("\r"), []byte("\n"))
	if _, err := l.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
