package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/wireview/config"
	"github.com/lixenwraith/wireview/input"
	"github.com/lixenwraith/wireview/parameter"
	"github.com/lixenwraith/wireview/terminal"
)

// Input Test: shows each key's name and the viewer intent it resolves to
// Useful for checking [keys] overrides before starting the viewer
func main() {
	configPath := flag.String("config", "", "TOML config whose [keys] table is applied")
	flag.Parse()

	keys := input.DefaultKeyTable()
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		if err := keys.ApplyBindings(cfg.Keys); err != nil {
			fmt.Fprintf(os.Stderr, "key bindings: %v\n", err)
			os.Exit(1)
		}
	}

	term, err := terminal.New(terminal.DetectColorMode())
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer term.Fini()

	// Event log (last N events)
	const maxLog = 10
	eventLog := make([]string, 0, maxLog)

	addLog := func(s string) {
		if len(eventLog) >= maxLog {
			copy(eventLog, eventLog[1:])
			eventLog = eventLog[:maxLog-1]
		}
		eventLog = append(eventLog, s)
	}

	render := func() {
		_ = term.Clear()
		term.Print(0, 0, "Input Test - press keys to see their binding - Ctrl+C to quit", terminal.ColorWhite)
		for i, entry := range eventLog {
			term.Print(1, 2+i, entry, terminal.ColorDefault)
		}
		_ = term.Flush()
	}

	render()
	for {
		ev, ok := term.PollEvent()
		if !ok {
			time.Sleep(parameter.IdleWait)
			continue
		}

		switch ev.Type {
		case terminal.EventClosed:
			return
		case terminal.EventResize:
			addLog(fmt.Sprintf("resize %dx%d", ev.Width, ev.Height))
		case terminal.EventKey:
			if ev.Key == terminal.KeyCtrlC {
				return
			}
			name := terminal.KeyName(ev.Key)
			if ev.Key == terminal.KeyRune {
				name = fmt.Sprintf("%q", ev.Rune)
			}
			addLog(fmt.Sprintf("key %-10s -> %s", name, keys.Lookup(ev)))
		}
		render()
	}
}
