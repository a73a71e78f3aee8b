package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prompter reads the learner's answers. Reading happens on a helper goroutine
// so that a blocked read can be abandoned when the context is cancelled.
type Prompter struct {
	in    io.Reader
	out   io.Writer
	lines chan string
	start sync.Once
}

// NewPrompter creates a prompter reading answers from in and writing
// questions to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    in,
		out:   out,
		lines: make(chan string),
	}
}

// Ask prints question and waits for one line of input. It returns
// ErrInterrupted when ctx is done and io.EOF when the input is exhausted.
func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	fmt.Fprint(p.out, question)
	p.start.Do(func() {
		go p.readLoop()
	})

	select {
	case <-ctx.Done():
		return "", ErrInterrupted
	case line, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func (p *Prompter) readLoop() {
	defer close(p.lines)

	reader := bufio.NewReader(p.in)
	for {
		text, err := reader.ReadString('\n')
		if err == nil || text != "" {
			p.lines <- strings.TrimRight(text, "\r\n")
		}
		if err != nil {
			return
		}
	}
}

// IsQuit reports whether answer asks to end the session
func IsQuit(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "q")
}
