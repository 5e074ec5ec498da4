// Package console reads operator input line by line and writes prompts and
// reports to the terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputClosed is returned once the input stream is exhausted or the
// prompter has been closed.
var ErrInputClosed = errors.New("input closed")

// maxLineLength bounds a single input line. Longer lines are discarded and
// read as an empty answer.
const maxLineLength = 64 * 1024

// Prompter pairs an input stream with an output writer. Input is consumed by a
// single background goroutine so that ReadLine can give up on cancellation.
type Prompter struct {
	out       io.Writer
	lines     chan string
	err       error // set before lines is closed
	done      chan struct{}
	closeOnce sync.Once
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		out:   out,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go p.scan(in)
	return p
}

// Close stops delivering input. A read already blocked on the underlying
// stream finishes in the background and its line is dropped.
func (p *Prompter) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

func (p *Prompter) scan(in io.Reader) {
	defer close(p.lines)

	reader := bufio.NewReaderSize(in, maxLineLength)
	for {
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.err = err
			}
			return
		}
		select {
		case p.lines <- line:
		case <-p.done:
			return
		}
	}
}

// readLine returns the next line without its terminator. A final line without
// a newline is returned before io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	chunk, err := r.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = r.ReadSlice('\n')
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return "", nil
	}
	if err != nil && (!errors.Is(err, io.EOF) || len(chunk) == 0) {
		return "", err
	}
	return strings.TrimRight(string(chunk), "\r\n"), nil
}

// Ask prints the prompt and returns the next line with surrounding spaces removed.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.ReadLine(ctx)
}

// ReadLine waits for the next input line.
func (p *Prompter) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-p.done:
		return "", ErrInputClosed
	default:
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		return "", ErrInputClosed
	case line, ok := <-p.lines:
		if !ok {
			if p.err != nil {
				return "", fmt.Errorf("failed to read input: %w", p.err)
			}
			return "", ErrInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Writer exposes the output stream for report printers.
func (p *Prompter) Writer() io.Writer {
	return p.out
}
