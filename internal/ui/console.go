// Package ui provides the line console and the optional terminal UI.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Rule frames every console message.
var Rule = strings.Repeat("_", 60)

type lineResult struct {
	line string
	err  error
}

// Console reads commands line by line and frames each message between rules.
type Console struct {
	out io.Writer

	once    sync.Once
	in      io.Reader
	results chan lineResult
}

// NewConsole returns a Console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

// start launches the single reader goroutine. A read error is delivered
// once, then the channel is closed; a pending read left behind by a
// cancelled ReadLine is delivered to the next call.
func (c *Console) start() {
	c.results = make(chan lineResult, 1)
	go func() {
		defer close(c.results)
		scanner := bufio.NewScanner(c.in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			c.results <- lineResult{line: scanner.Text()}
		}
		if err := scanner.Err(); err != nil {
			c.results <- lineResult{err: err}
		}
	}()
}

// ReadLine returns the next input line without its terminator.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	c.once.Do(c.start)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-c.results:
		if !ok {
			return "", io.EOF
		}
		return r.line, r.err
	}
}

// Show prints msg between rules, each line indented by one space.
func (c *Console) Show(msg string) {
	fmt.Fprintln(c.out, Rule)
	for _, line := range strings.Split(msg, "\n") {
		fmt.Fprintln(c.out, " "+line)
	}
	fmt.Fprintln(c.out, Rule)
}

// ShowError prints msg the same way as Show.
func (c *Console) ShowError(msg string) {
	c.Show(msg)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
