package prompt

import (
	"regexp"
	"strings"
)

// ansiRE matches CSI escape sequences: ESC '[' then digits/semicolons then one letter.
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// State tracks whether a connection is currently sitting at the server's
// command prompt. The server frames nothing: the only way to know it has
// finished responding is to spot the trailing "> " marker in the stream.
//
// Rules:
//   - Only wait for a prompt after sending a command.
//   - If we already saw the prompt, don't wait for another one.
type State struct {
	atPrompt bool
}

// AtPrompt reports whether the server is idle and ready for a command.
func (s *State) AtPrompt() bool {
	return s.atPrompt
}

// ObserveIncoming inspects one received frame and marks the connection
// ready if the frame ends in a prompt marker.
func (s *State) ObserveIncoming(frame string) {
	if LooksLikePrompt(frame) {
		s.atPrompt = true
	}
}

// SentCommand marks the connection busy. Called unconditionally on every send.
func (s *State) SentCommand() {
	s.atPrompt = false
}

// StripANSI removes CSI escape sequences from s.
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// LooksLikePrompt reports whether frame, after stripping ANSI sequences and
// carriage returns, is a prompt marker: either the whole frame trims to a
// lone ">", or the last line of a combined frame trims to ">". Text that
// merely contains ">" mid-line (say "> go north") is not a prompt.
func LooksLikePrompt(frame string) bool {
	if frame == "" {
		return false
	}

	s := StripANSI(frame)
	s = strings.ReplaceAll(s, "\r", "")

	// Common case: the server sends just "> ", possibly with odd whitespace.
	if strings.TrimSpace(s) == ">" {
		return true
	}

	// Combined-frame case: "...output\n> " arrives as a single frame.
	lines := strings.Split(s, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	return last == ">"
}
