package docassist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// LineAnswerer prints each follow-up to w and reads a one-line answer from
// r. End of input ends the session.
type LineAnswerer struct {
	r *bufio.Reader
	w io.Writer
}

// NewLineAnswerer creates a LineAnswerer.
func NewLineAnswerer(r io.Reader, w io.Writer) *LineAnswerer {
	return &LineAnswerer{r: bufio.NewReader(r), w: w}
}

// Answer implements Answerer.
func (l *LineAnswerer) Answer(ctx context.Context, followup string) (string, error) {
	return l.Ask(ctx, fmt.Sprintf("\nFollow-up:\n%s\n\nYour response:\n> ", followup))
}

// Ask prints prompt and reads one trimmed line. It returns io.EOF once the
// input is exhausted.
func (l *LineAnswerer) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(l.w, prompt)

	line, err := l.r.ReadString('\n')
	if err == io.EOF && line != "" {
		return strings.TrimSpace(line), nil
	}
	if err != nil {
		if err == io.EOF {
			return "", io.EOF
		}
		return "", eris.Wrap(err, "docassist: read line")
	}
	return strings.TrimSpace(line), nil
}
