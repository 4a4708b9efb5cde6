// Command surfacetool inspects MIDI ports, the message catalog and capture
// sessions, and talks to the host from a line console.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go-surface/config"
	"go-surface/debug"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	port := flag.String("port", cfg.Host.Port, "host MIDI port (substring match)")
	dbPath := flag.String("db", cfg.CapturePath(), "capture database")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Usage = usage
	flag.Parse()

	if *verbose {
		debug.EnableWriter(os.Stderr)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch args[0] {
	case "list":
		err = listPorts()
	case "catalog":
		err = printCatalog(os.Stdout, args[1:])
	case "monitor":
		err = monitor(ctx, *port)
	case "console":
		err = runConsole(ctx, *port)
	case "sessions":
		err = listSessions(*dbPath)
	case "export":
		err = exportSession(*dbPath, args[1:])
	case "replay":
		err = replaySession(*dbPath, args[1:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", args[0], err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("surfacetool [-port name] [-db path] [-v] <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list              - List all MIDI ports")
	fmt.Println("  catalog [name]    - Show the message catalog, or one entry")
	fmt.Println("  monitor           - Print frames arriving from the host")
	fmt.Println("  console           - Send messages to the host interactively")
	fmt.Println("  sessions          - List capture sessions")
	fmt.Println("  export <id|last>  - Write a session as YAML")
	fmt.Println("  replay <id|last>  - Feed a session's host frames through the surface")
}
