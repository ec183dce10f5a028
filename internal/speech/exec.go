package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-shellwords"
)

// DefaultCommand speaks Mandarin through espeak-ng.
const DefaultCommand = "espeak-ng -v cmn -s {wpm} {text}"

// baseWPM is the words-per-minute used at rate 1.
const baseWPM = 175

// ExecSpeaker runs a command per utterance. Arguments may contain the
// placeholders {text}, {lang}, {rate} and {wpm}; when no argument holds
// {text} the text is appended as the last argument. Starting a new
// utterance cancels the one in progress.
type ExecSpeaker struct {
	cmd []string

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
}

var _ Speaker = (*ExecSpeaker)(nil)

// NewExecSpeaker parses command with shell quoting rules.
func NewExecSpeaker(command string) (*ExecSpeaker, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse speech command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: speech command empty", ErrUnavailable)
	}
	return &ExecSpeaker{cmd: args}, nil
}

// Available reports whether the command's binary can be found.
func (e *ExecSpeaker) Available() error {
	if _, err := exec.LookPath(e.cmd[0]); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, e.cmd[0], err)
	}
	return nil
}

func (e *ExecSpeaker) Speak(ctx context.Context, text string, opts Options) error {
	if err := e.Available(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.cancel = cancel
	e.seq++
	seq := e.seq
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		if e.seq == seq {
			e.cancel = nil
		}
		e.mu.Unlock()
		cancel()
	}()

	args := e.args(text, opts.withDefaults())
	out, err := exec.CommandContext(ctx, args[0], args[1:]...).CombinedOutput()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("speech command: %w: %s", err, msg)
		}
		return fmt.Errorf("speech command: %w", err)
	}
	return nil
}

// args expands placeholders for one utterance.
func (e *ExecSpeaker) args(text string, opts Options) []string {
	r := strings.NewReplacer(
		"{text}", text,
		"{lang}", opts.Lang,
		"{rate}", strconv.FormatFloat(opts.Rate, 'f', -1, 64),
		"{wpm}", strconv.Itoa(int(baseWPM*opts.Rate)),
	)
	hasText := false
	out := make([]string, 0, len(e.cmd)+1)
	for _, a := range e.cmd {
		if strings.Contains(a, "{text}") {
			hasText = true
		}
		out = append(out, r.Replace(a))
	}
	if !hasText {
		out = append(out, text)
	}
	return out
}
