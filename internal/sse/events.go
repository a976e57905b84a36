package sse

import (
	"io"
	"strings"
)

// SSE event type constants
const (
	EventStateUpdate = "state-update"
	EventSaveStatus  = "save-status"
)

// BufferSize is the buffer size for client message channels
const BufferSize = 10

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// WriteTo writes the message as one event frame. Every line of data gets its own
// "data:" field so a line break in the payload cannot end the frame early.
func (m Message) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(m.Event)
	b.WriteByte('\n')
	for _, line := range strings.Split(lineBreaks.Replace(m.Data), "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
