package stream

import (
	"bufio"
	"strings"
)

// WriteSSE encodes one event in text/event-stream framing and flushes it.
// Returns the write error so the relay loop can stop once the client is
// gone.
func WriteSSE(w *bufio.Writer, event Event) error {
	if event.Name != "" {
		if _, err := w.WriteString("event: " + event.Name + "\n"); err != nil {
			return err
		}
	}

	for _, line := range strings.Split(event.Data, "\n") {
		if _, err := w.WriteString("data: " + line + "\n"); err != nil {
			return err
		}
	}

	if _, err := w.WriteString("\n"); err != nil {
		return err
	}

	return w.Flush()
}
