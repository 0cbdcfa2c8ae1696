package logger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Console output with level icons, mirroring the backend suite's CLI look.
// Prefixes are colored, the message text is left alone.

var (
	infoPrefix    = color.New(color.FgBlue).Sprint("[i]")
	successPrefix = color.New(color.FgGreen).Sprint("[+]")
	warnPrefix    = color.New(color.FgYellow).Sprint("[!]")
	errorPrefix   = color.New(color.FgRed).Sprint("[x]")
	askPrefix     = color.New(color.FgCyan).Sprint("[?]")
	spinPrefix    = color.New(color.FgMagenta).Sprint("[~]")
)

// Out is the destination for console messages. Tests may replace it.
var Out io.Writer = color.Output

// In is the source for interactive answers. Tests may replace it.
var In io.Reader = os.Stdin

// Info prints an informational message.
func Info(format string, a ...any) {
	fmt.Fprintf(Out, "%s %s\n", infoPrefix, fmt.Sprintf(format, a...))
}

// Success prints a success message.
func Success(format string, a ...any) {
	fmt.Fprintf(Out, "%s %s\n", successPrefix, fmt.Sprintf(format, a...))
}

// Warn prints a warning message.
func Warn(format string, a ...any) {
	fmt.Fprintf(Out, "%s %s\n", warnPrefix, fmt.Sprintf(format, a...))
}

// Error prints an error message.
func Error(format string, a ...any) {
	fmt.Fprintf(Out, "%s %s\n", errorPrefix, fmt.Sprintf(format, a...))
}

// Question prints a prompt and returns the user's answer with surrounding
// whitespace trimmed. An empty string is returned on EOF.
func Question(prompt string) string {
	fmt.Fprintf(Out, "%s %s ", askPrefix, prompt)
	answer, _ := bufio.NewReader(In).ReadString('\n')
	return strings.TrimSpace(answer)
}

// Spinner renders a braille spinner next to a message while a slow step runs.
type Spinner struct {
	message string
	done    chan struct{}
	wg      sync.WaitGroup
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StartSpinner begins animating message until Stop is called.
func StartSpinner(message string) *Spinner {
	s := &Spinner{message: message, done: make(chan struct{})}
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *Spinner) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-s.done:
			// Clear the spinner line before the next message lands.
			fmt.Fprintf(Out, "\r%s\r", strings.Repeat(" ", len(s.message)+8))
			return
		case <-ticker.C:
			fmt.Fprintf(Out, "\r%s %s %s", spinPrefix, s.message, spinnerFrames[frame%len(spinnerFrames)])
			frame++
		}
	}
}

// Stop ends the animation and clears the spinner line.
func (s *Spinner) Stop() {
	close(s.done)
	s.wg.Wait()
}
