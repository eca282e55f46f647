package detail

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// CommandSpeaker speaks through an external TTS program such as espeak.
type CommandSpeaker struct {
	name string
	args []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewCommandSpeaker parses command ("espeak -v en") into a program and its
// leading arguments. The text is passed as the final argument.
func NewCommandSpeaker(command string) (*CommandSpeaker, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("detail: empty speech command")
	}
	return &CommandSpeaker{name: fields[0], args: fields[1:]}, nil
}

func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrNoSpeechInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd != nil {
		killLocked(s.cmd)
		s.cmd = nil
	}

	cmd := exec.CommandContext(ctx, s.name, append(append([]string{}, s.args...), text)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("detail: start %s: %w", s.name, err)
	}
	s.cmd = cmd

	go func() {
		_ = cmd.Wait()
		s.mu.Lock()
		if s.cmd == cmd {
			s.cmd = nil
		}
		s.mu.Unlock()
	}()
	return nil
}

func (s *CommandSpeaker) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd == nil {
		return nil
	}
	err := killLocked(s.cmd)
	s.cmd = nil
	return err
}

// Speaking reports whether a TTS process is still running.
func (s *CommandSpeaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd != nil
}

func killLocked(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("detail: cancel speech: %w", err)
	}
	return nil
}
