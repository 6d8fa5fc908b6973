// Package shell implements the interactive password session used by the CLI.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/vaultpass/passgen-go/internal/service"
)

const helpText = `commands:
  length N          set the password length
  numbers on|off    include digits 0-9
  symbols on|off    include !@#$%^&*()_+
  regen             generate a new password
  show              print the current settings
  help              print this help
  quit              leave the shell`

var (
	passwordColor = color.New(color.FgGreen, color.Bold)
	errorColor    = color.New(color.FgRed)
)

// Shell reads commands line by line and applies them to a session.
type Shell struct {
	sess *service.Session
	in   *bufio.Scanner
	out  io.Writer
}

// New creates a Shell over sess reading from r and writing to w.
func New(sess *service.Session, r io.Reader, w io.Writer) *Shell {
	return &Shell{sess: sess, in: bufio.NewScanner(r), out: w}
}

// Run processes commands until quit or end of input.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, "=== Password Generator (type help for commands) ===")
	s.printPassword()

	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}

		quit, err := s.exec(fields[0], fields[1:])
		if err != nil {
			errorColor.Fprintf(s.out, "error: %v\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func (s *Shell) exec(cmd string, args []string) (bool, error) {
	switch strings.ToLower(cmd) {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "show":
		cfg := s.sess.Config()
		fmt.Fprintf(s.out, "length=%d numbers=%s symbols=%s\n", cfg.Length, onOff(cfg.Digits), onOff(cfg.Symbols))
	case "regen", "r":
		if err := s.sess.Regenerate(); err != nil {
			return false, err
		}
		s.printPassword()
	case "length", "l":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: length N")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("invalid length %q", args[0])
		}
		return false, s.change(func() error { return s.sess.SetLength(n) })
	case "numbers", "n":
		on, err := parseToggle(args)
		if err != nil {
			return false, err
		}
		return false, s.change(func() error { return s.sess.SetDigits(on) })
	case "symbols", "s":
		on, err := parseToggle(args)
		if err != nil {
			return false, err
		}
		return false, s.change(func() error { return s.sess.SetSymbols(on) })
	default:
		return false, fmt.Errorf("unknown command %q, type help", cmd)
	}
	return false, nil
}

func (s *Shell) change(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	s.printPassword()
	return nil
}

func (s *Shell) printPassword() {
	passwordColor.Fprintln(s.out, s.sess.Password())
}

func parseToggle(args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("expected on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "y", "yes", "true", "1":
		return true, nil
	case "off", "n", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", args[0])
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
