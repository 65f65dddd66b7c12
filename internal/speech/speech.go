// Package speech plays drill items through an external text-to-speech command.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/verte-zerg/tonedrill/internal/lexicon"
	"github.com/verte-zerg/tonedrill/internal/model"
)

// ErrNoCommand means audio is enabled but no speech command is configured.
var ErrNoCommand = errors.New("speech: no speech command configured")

// Speaker pronounces a drill item.
type Speaker interface {
	Speak(ctx context.Context, units model.DrillItem) error
}

// Nop is the speaker used when audio is off.
type Nop struct{}

// Speak implements Speaker.
func (Nop) Speak(context.Context, model.DrillItem) error { return nil }

// Runner executes a command. exec.CommandContext backs the default runner.
type Runner func(ctx context.Context, name string, args ...string) error

// Command speaks by running an external program with the spoken text as
// the final argument.
type Command struct {
	lex  *lexicon.Lexicon
	name string
	args []string
	run  Runner
}

// NewCommand parses command (e.g. "espeak-ng -v cmn") into a Command speaker.
func NewCommand(lex *lexicon.Lexicon, command string) (*Command, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, ErrNoCommand
	}
	return &Command{lex: lex, name: fields[0], args: fields[1:], run: runCommand}, nil
}

// WithRunner replaces the process runner.
func (c *Command) WithRunner(run Runner) *Command {
	c.run = run
	return c
}

// Speak implements Speaker.
func (c *Command) Speak(ctx context.Context, units model.DrillItem) error {
	if len(units) == 0 {
		return nil
	}
	text := c.lex.Text(units)
	args := append(append([]string{}, c.args...), text)
	if err := c.run(ctx, c.name, args...); err != nil {
		return fmt.Errorf("failed to speak %q: %w", text, err)
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// New returns the speaker for the practice settings.
func New(lex *lexicon.Lexicon, audio bool, command string) (Speaker, error) {
	if !audio {
		return Nop{}, nil
	}
	return NewCommand(lex, command)
}
