package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/sync/errgroup"

	"go-surface/config"
	"go-surface/midi"
	"go-surface/protocol"
)

const consoleHelp = `commands:
  send <Name> [json]   encode and send a message, e.g. send TransportTempo {"Tempo":120}
  catalog [Name]       show the catalog
  help                 this text
  quit                 leave the console`

// runConsole reads commands from a line editor and prints host frames
// above the prompt as they arrive.
func runConsole(ctx context.Context, port string) error {
	hp, err := midi.OpenHost(port)
	if err != nil {
		return err
	}
	defer hp.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "surface> ",
		HistoryFile:     historyPath(),
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("line editor: %w", err)
	}
	defer rl.Close()

	d := protocol.NewDispatcher(nil, hp, protocol.WithTap(func(dir protocol.Direction, frame []byte, origin protocol.Origin) {
		fmt.Fprintln(rl.Stdout(), describe(dir, frame, origin))
	}))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				rl.Close()
				return nil
			case f := <-hp.Frames():
				fmt.Fprintln(rl.Stdout(), describe(protocol.ToController, f.Data, f.Origin))
			}
		}
	})
	g.Go(func() error {
		defer rl.Close()
		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return errQuit
			}
			if err != nil {
				return err
			}
			if err := execLine(rl.Stdout(), d, line); err != nil {
				if errors.Is(err, errQuit) {
					return err
				}
				fmt.Fprintln(rl.Stdout(), "error:", err)
			}
		}
	})
	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

var errQuit = errors.New("quit")

func historyPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "console_history")
}

type sender interface {
	Send(protocol.Message) error
}

func execLine(w io.Writer, s sender, line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case "":
		return nil
	case "send":
		m, err := parseSend(rest)
		if err != nil {
			return err
		}
		return s.Send(m)
	case "catalog":
		var args []string
		if rest = strings.TrimSpace(rest); rest != "" {
			args = []string{rest}
		}
		return printCatalog(w, args)
	case "help", "?":
		fmt.Fprintln(w, consoleHelp)
		return nil
	case "quit", "exit":
		return errQuit
	}
	return fmt.Errorf("unknown command %q (try help)", cmd)
}

// parseSend builds a message from its catalog name and an optional JSON
// object of field values.
func parseSend(args string) (protocol.Message, error) {
	name, body, _ := strings.Cut(strings.TrimSpace(args), " ")
	if name == "" {
		return nil, fmt.Errorf("send needs a message name")
	}
	info, ok := protocol.ByName(name)
	if !ok {
		return nil, fmt.Errorf("no message named %q", name)
	}
	if info.Direction == protocol.ToController {
		return nil, fmt.Errorf("%s is sent by the host, not the controller", name)
	}
	m := info.New()
	if body = strings.TrimSpace(body); body != "" {
		if err := json.Unmarshal([]byte(body), m); err != nil {
			return nil, fmt.Errorf("%s fields: %w", name, err)
		}
	}
	return m, nil
}

func completer() *readline.PrefixCompleter {
	names := func(string) []string {
		var out []string
		for _, info := range protocol.All() {
			if info.Direction != protocol.ToController {
				out = append(out, info.Name)
			}
		}
		return out
	}
	all := func(string) []string {
		var out []string
		for _, info := range protocol.All() {
			out = append(out, info.Name)
		}
		return out
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("send", readline.PcItemDynamic(names)),
		readline.PcItem("catalog", readline.PcItemDynamic(all)),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
