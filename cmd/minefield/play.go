package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vancomm/minefield/internal/session"
)

const playHelp = `commands:
  o ROW COL   open a square
  f ROW COL   mark a square as a mine, then as unsure, then clear it
  c ROW COL   open the unmarked neighbours of a numbered square
  n           new game
  h           this help
  q           quit
`

func newPlayCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := c.cfg.GameParams()
			if err != nil {
				return err
			}
			s, err := session.New(params, createRand(c.cfg.Seed), c.log)
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			return runPlay(in, cmd.OutOrStdout(), s, isTerminal(in))
		},
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runPlay reads one command per line from in and prints the board after
// each one, until q or the end of the input.
func runPlay(in io.Reader, out io.Writer, s *session.Session, prompt bool) error {
	if prompt {
		if _, err := io.WriteString(out, playHelp); err != nil {
			return err
		}
	}
	if err := s.Render(out); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			if _, err := io.WriteString(out, "> "); err != nil {
				return err
			}
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit":
			return nil
		case "h", "help", "?":
			if _, err := io.WriteString(out, playHelp); err != nil {
				return err
			}
			continue
		}

		if err := s.Execute(line); err != nil {
			if _, werr := fmt.Fprintf(out, "error: %s\n", err); werr != nil {
				return werr
			}
			continue
		}
		if err := s.Render(out); err != nil {
			return err
		}
	}
}
