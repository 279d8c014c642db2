package shell

import (
	"bytes"
	"sync"
)

// lineWriter splits a byte stream into lines for an Observer. Stdout and
// stderr of the interpreter share one lineWriter, so writes are serialised.
type lineWriter struct {
	mu       sync.Mutex
	observer Observer
	buf      bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := w.buf.Next(i + 1)
		w.emit(line[:i])
	}
	return len(p), nil
}

// Flush delivers a trailing line that had no newline.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emit(w.buf.Bytes())
		w.buf.Reset()
	}
}

func (w *lineWriter) emit(line []byte) {
	if w.observer == nil {
		return
	}
	w.observer.Output(string(bytes.TrimRight(line, "\r")))
}
