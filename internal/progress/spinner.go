// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package progress

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// spinnerFrames are the characters cycled through while spinning.
const spinnerFrames = `|/-\`

// redrawInterval is how often the spinner redraws. The sleep exists only
// to yield the terminal a readable refresh rate, never for correctness.
const redrawInterval = 100 * time.Millisecond

// Spinner redraws a one-line progress message while some operation runs.
// It owns only presentation state; the Counter it reads belongs to the
// operation. Stop must be called (and returns only) after the redraw
// goroutine has fully exited, so no stray writer is left on the terminal.
type Spinner struct {
	w       io.Writer
	message string
	counter *Counter
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner writing to w. counter may be nil for
// operations with nothing to count.
func NewSpinner(w io.Writer, message string, counter *Counter) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		counter: counter,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the redraw goroutine.
func (s *Spinner) Start() {
	go s.run()
}

// Stop halts the spinner, waits for the redraw goroutine to finish, and
// prints the final "done" line.
func (s *Spinner) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Spinner) run() {
	defer close(s.done)
	var lastLen int
	frame := 0
	for {
		msg := s.render(string(spinnerFrames[frame]))
		fmt.Fprint(s.w, msg)
		lastLen = len(msg)
		select {
		case <-s.stop:
			s.erase(lastLen)
			fmt.Fprintln(s.w, s.render("-"))
			return
		case <-time.After(redrawInterval):
		}
		s.erase(lastLen)
		frame = (frame + 1) % len(spinnerFrames)
	}
}

func (s *Spinner) render(frame string) string {
	if s.counter == nil {
		return fmt.Sprintf("%s %s...", frame, s.message)
	}
	return fmt.Sprintf("%s %s... (%s)", frame, s.message, s.counter)
}

// erase backspaces over the previous render.
func (s *Spinner) erase(n int) {
	fmt.Fprint(s.w, strings.Repeat("\x08", n))
}
