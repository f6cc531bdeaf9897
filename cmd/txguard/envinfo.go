package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

type envInfo struct {
	shell   string
	term    string
	wrapped bool
	tty     bool
	cols    int
	rows    int
}

func readEnvInfo() envInfo {
	info := envInfo{
		shell:   os.Getenv("SHELL"),
		term:    os.Getenv("TERM"),
		wrapped: os.Getenv("TXGUARD_WRAPPED") != "",
		tty:     term.IsTerminal(int(os.Stdin.Fd())),
	}
	cols, rows, err := term.GetSize(int(os.Stdin.Fd()))
	if err == nil {
		info.cols = cols
		info.rows = rows
	}
	return info
}

func envSummary() string {
	info := readEnvInfo()
	return fmt.Sprintf("Detected shell=%s TERM=%s tty=%t size=%dx%d", info.shell, info.term, info.tty, info.cols, info.rows)
}
