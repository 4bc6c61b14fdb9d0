// Package testutil provides deterministic test doubles for the shell's I/O
// collaborators. They satisfy the shell interfaces structurally, so scenario
// tests can drive the real core and runtime with scripted input.
package testutil

import (
	"fmt"
	"sync"
)

// ScriptConsole is a LineReader returning scripted lines in order.
type ScriptConsole struct {
	mu      sync.Mutex
	lines   []string
	idx     int
	Prompts []string // prompts seen, in order
}

// NewScriptConsole creates a console that answers with the given lines.
func NewScriptConsole(lines ...string) *ScriptConsole {
	return &ScriptConsole{lines: lines}
}

// PromptAndRead records the prompt and returns the next scripted line.
// Reading past the script fails, like a closed stdin would.
func (c *ScriptConsole) PromptAndRead(prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Prompts = append(c.Prompts, prompt)
	if c.idx >= len(c.lines) {
		return "", fmt.Errorf("script console exhausted after %d lines", len(c.lines))
	}
	line := c.lines[c.idx]
	c.idx++
	return line, nil
}

// TwoLines is one scripted two-line source.
type TwoLines struct {
	First  string
	Second string
}

// MapLoader is a SourceLoader backed by an in-memory reference map.
type MapLoader struct {
	Sources map[string]TwoLines
}

// Load returns the scripted lines for ref, or an error for unknown refs.
func (l MapLoader) Load(ref string) (string, string, error) {
	src, ok := l.Sources[ref]
	if !ok {
		return "", "", fmt.Errorf("no such source %q", ref)
	}
	return src.First, src.Second, nil
}

// CaptureSink is a ReportSink collecting report lines.
type CaptureSink struct {
	mu        sync.Mutex
	InfoLines []string
	ErrLines  []string
}

func (s *CaptureSink) Info(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InfoLines = append(s.InfoLines, line)
}

func (s *CaptureSink) Error(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ErrLines = append(s.ErrLines, line)
}
