package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineReader writes a prompt, blocks for one line of input and returns it
// verbatim (without the line terminator).
type LineReader interface {
	PromptAndRead(prompt string) (string, error)
}

// ConsoleReader is the stdin/stdout LineReader.
type ConsoleReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleReader wraps an input stream and a prompt sink.
func NewConsoleReader(in io.Reader, out io.Writer) *ConsoleReader {
	return &ConsoleReader{in: bufio.NewReader(in), out: out}
}

// PromptAndRead prints the prompt and blocks until one line arrives.
//
// A trailing line on a stream that ends without a newline is still returned;
// EOF with no pending input is reported as an error, since the run cannot
// continue without commands.
func (c *ConsoleReader) PromptAndRead(prompt string) (string, error) {
	if _, err := fmt.Fprint(c.out, prompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", fmt.Errorf("read command line: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReportSink emits the single-line run reports.
type ReportSink interface {
	Info(line string)
	Error(line string)
}

// WriterSink writes reports to a pair of writers, one line each.
type WriterSink struct {
	Out    io.Writer
	ErrOut io.Writer
}

func (s WriterSink) Info(line string) {
	fmt.Fprintln(s.Out, line)
}

func (s WriterSink) Error(line string) {
	fmt.Fprintln(s.ErrOut, line)
}
