// Package prompt turns generation form payloads into the system/user message pair
// sent to the completion API. Every builder is a pure function: the same request
// always yields a byte-identical PromptPair.
package prompt

import (
	"strings"
)

// or returns value, or the placeholder when value is blank.
func or(value, placeholder string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return placeholder
}

// writer accumulates prompt lines.
type writer struct {
	b strings.Builder
}

func (w *writer) line(s string) {
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) blank() { w.b.WriteByte('\n') }

// field writes "label: value", substituting the placeholder for a blank value.
func (w *writer) field(label, value, placeholder string) {
	w.line(label + ": " + or(value, placeholder))
}

// item writes a "- label: value" bullet with placeholder substitution.
func (w *writer) item(label, value, placeholder string) {
	w.line("- " + label + ": " + or(value, placeholder))
}

// optional writes "label: value" only when value is present.
func (w *writer) optional(label, value string) {
	if v := strings.TrimSpace(value); v != "" {
		w.line(label + ": " + v)
	}
}

// block appends a pre-rendered block followed by a blank line; empty blocks are skipped.
func (w *writer) block(s string) {
	if s == "" {
		return
	}
	w.b.WriteString(s)
	w.blank()
}

func (w *writer) String() string { return strings.TrimRight(w.b.String(), "\n") }

// render runs fn against a fresh writer and returns what it wrote, newline-terminated.
func render(fn func(w *writer)) string {
	var w writer
	fn(&w)
	return w.b.String()
}
