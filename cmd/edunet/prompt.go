package main

import (
	"fmt"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/rs/zerolog"
)

var motd = `####################################################
###             __                          __   ###
###       ___  / /_  __  ______  ___  __   / /_  ###
###      / _ \/ __ \/ / / / __ \/ _ \/ /_ / __/  ###
###     /  __/ /_/ / /_/ / / / /  __/ __// /_    ###
###     \___/\__,_/\__,_/_/ /_/\___/\__/ \__/    ###
####################################################`

func executor(in string) {
	args := strings.Fields(in)
	if len(args) == 0 {
		return
	}

	cmd := shellCommand()
	cmd.SetArgs(args)
	_ = cmd.ExecuteContext(current.ctx)
}

// cachedAddresses suggests the addresses currently in the ARP cache.
func cachedAddresses() []prompt.Suggest {
	var s []prompt.Suggest
	for _, entry := range current.stack.Arp().Entries() {
		s = append(s, prompt.Suggest{Text: entry.ProtocolAddress.String(), Description: entry.HardwareAddress.String()})
	}
	return s
}

func completer(doc prompt.Document) []prompt.Suggest {
	text := doc.TextBeforeCursor()
	fields := strings.Fields(text)

	// top-level prompt
	s := []prompt.Suggest{
		{Text: "version", Description: "show version"},
		{Text: "help", Description: "show help"},
		{Text: "exit", Description: "exit edunet"},
		{Text: "ping", Description: "ping a host"},
		{Text: "arp", Description: "show or modify the ARP cache"},
		{Text: "log", Description: "show or configure the log level"},
	}

	switch {
	case strings.HasPrefix(text, "version"),
		strings.HasPrefix(text, "help"),
		strings.HasPrefix(text, "exit"):
		s = []prompt.Suggest{}

	case strings.HasPrefix(text, "ping"):
		s = cachedAddresses()
		if len(fields) > 1 && doc.GetWordBeforeCursor() == "" {
			s = []prompt.Suggest{{Text: "-n", Description: "number of pings"}}
		}

	case strings.HasPrefix(text, "arp resolve"):
		s = cachedAddresses()

	case strings.HasPrefix(text, "arp set"):
		s = []prompt.Suggest{}

	case strings.HasPrefix(text, "arp"):
		s = []prompt.Suggest{
			{Text: "list", Description: "list all cache entries"},
			{Text: "resolve", Description: "resolve the hardware address of a host"},
			{Text: "set", Description: "add or overwrite a cache entry"},
		}

	case strings.HasPrefix(text, "log"):
		s = []prompt.Suggest{
			{Text: zerolog.Disabled.String(), Description: "disable logging"},
			{Text: zerolog.LevelTraceValue, Description: "set loglevel to trace, dumps every frame"},
			{Text: zerolog.LevelDebugValue, Description: "set loglevel to debug"},
			{Text: zerolog.LevelInfoValue, Description: "set loglevel to info"},
			{Text: zerolog.LevelWarnValue, Description: "set loglevel to warn"},
			{Text: zerolog.LevelErrorValue, Description: "set loglevel to error"},
		}
	}

	return prompt.FilterHasPrefix(s, doc.GetWordBeforeCursor(), true)
}

func exitChecker(in string, breakline bool) bool {
	return in == "exit" && breakline
}

// runPrompt blocks until the user exits the shell.
func runPrompt() {
	fmt.Println(motd)

	p := prompt.New(
		executor,
		completer,
		prompt.OptionPrefix("> "),
		prompt.OptionSetExitCheckerOnInput(exitChecker),
	)

	p.Run()
}
