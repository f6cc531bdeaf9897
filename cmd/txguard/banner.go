package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// caption is the line shown under the logo.
func caption() string {
	return platformLabel() + " · " + shellLabel()
}

func platformLabel() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS"
	case "linux":
		return "Linux"
	default:
		return runtime.GOOS
	}
}

func shellLabel() string {
	shell := strings.TrimSpace(os.Getenv("SHELL"))
	if shell == "" {
		return "shell"
	}
	return filepath.Base(shell)
}
