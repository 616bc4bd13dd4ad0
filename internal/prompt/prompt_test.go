package prompt

import "testing"

func TestLooksLikePrompt(t *testing.T) {
	cases := []struct {
		frame string
		want  bool
	}{
		{">", true},
		{"> ", true},
		{" > ", true},
		{"\r\n> ", true},
		{"\x1b[32m> \x1b[0m", true},
		{"\x1b[1;33m>\x1b[0m\r\n", true},
		{"You see a rat here.\n> ", true},
		{"A rat squeaks.\r\nThe rat dies!\r\n>", true},
		{"", false},
		{"> go north", false},
		{"You see a rat here.", false},
		{"The sign reads: -> exit", false},
		{"north > south", false},
		{"You see a rat here.\n> go north", false},
	}

	for _, tc := range cases {
		if got := LooksLikePrompt(tc.frame); got != tc.want {
			t.Errorf("LooksLikePrompt(%q) = %v, want %v", tc.frame, got, tc.want)
		}
	}
}

func TestStateTransitions(t *testing.T) {
	var s State

	if s.AtPrompt() {
		t.Fatal("new state should not be at prompt")
	}

	s.ObserveIncoming("Welcome!\n> ")
	if !s.AtPrompt() {
		t.Fatal("expected at prompt after observing prompt frame")
	}

	// Non-prompt frames never clear the ready state.
	s.ObserveIncoming("A rat wanders in.")
	if !s.AtPrompt() {
		t.Fatal("non-prompt frame must not clear ready state")
	}

	s.SentCommand()
	if s.AtPrompt() {
		t.Fatal("expected busy after sending a command")
	}

	// SentCommand is unconditional.
	s.SentCommand()
	if s.AtPrompt() {
		t.Fatal("expected busy to stick")
	}
}

func TestStripANSI(t *testing.T) {
	got := StripANSI("\x1b[1;32mhello\x1b[0m world")
	if got != "hello world" {
		t.Errorf("StripANSI = %q, want %q", got, "hello world")
	}
}
