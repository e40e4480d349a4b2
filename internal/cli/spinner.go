package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line on stderr while a solve runs, with the
// elapsed time after the message. It stops on its own when the parent
// context ends.
type Spinner struct {
	w       io.Writer
	message string
	parent  context.Context
	start   time.Time

	once    sync.Once
	done    chan struct{}
	stopped chan struct{}

	mu    sync.Mutex
	width int
}

// newSpinner creates a spinner that runs until Stop.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that also stops when ctx is done.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{
		w:       os.Stderr,
		message: message,
		parent:  ctx,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.start = time.Now()
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.parent.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	elapsed := time.Since(s.start).Truncate(100 * time.Millisecond)
	line := fmt.Sprintf("%s %s %s", frame, s.message, elapsed)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = len(line)
	fmt.Fprintf(s.w, "\r%s %s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message), StyleDim.Render(elapsed.String()))
}

// Stop ends the animation and clears the line. Stop may be called more
// than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		if !s.start.IsZero() {
			<-s.stopped
		}
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2))
	s.width = 0
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended. Stop alone does not
// count as cancellation.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
