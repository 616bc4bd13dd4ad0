package mudclient

import "fmt"

// tailLen bounds the diagnostic buffer carried by a TimeoutError.
const tailLen = 180

// TimeoutError reports that a wait for server output expired. Tail holds the
// end of whatever was received before the deadline, so a failed wait can be
// diagnosed from the log line alone.
type TimeoutError struct {
	Waiting string // the substring waited for, or "prompt"
	Tail    string
}

func (e *TimeoutError) Error() string {
	if e.Tail == "" {
		return fmt.Sprintf("timeout waiting for %s", e.Waiting)
	}
	return fmt.Sprintf("timeout waiting for %s (buffer tail=%q)", e.Waiting, e.Tail)
}

func newTimeoutError(waiting, buf string) *TimeoutError {
	tail := buf
	if len(tail) > tailLen {
		tail = tail[len(tail)-tailLen:]
	}
	return &TimeoutError{Waiting: waiting, Tail: tail}
}
