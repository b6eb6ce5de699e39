package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

var colorRed = string("\033[31m")

func cleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		u, err := user.Current()
		if err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

func printJSON(v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %s", err)
	}
	fmt.Println(string(buf))
	return nil
}

func printErr(err error) {
	msg := fmt.Sprintf("%s%s\033[0m", colorRed, capitalize(err.Error()))
	fmt.Fprintln(os.Stderr, msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	ss := strings.ToUpper(s[0:1])
	ss += s[1:]
	return ss
}

func formatVersion() string {
	return fmt.Sprintf(
		"\nVersion: %s\nCommit: %s\nDate: %s", version, commit, date,
	)
}
