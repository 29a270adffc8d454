// Command sharefs works with files on an SMB share from the shell, or
// serves the share over an authenticated HTTP gateway.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/marmos91/sharefs/cmd/sharefs/commands"
	"github.com/marmos91/sharefs/internal/cli/prompt"
	"github.com/marmos91/sharefs/pkg/sharefs"
)

// Set through -ldflags "-X main.version=..." at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version, commands.Commit, commands.Date = version, commit, date
	os.Exit(run())
}

func run() int {
	err := commands.Execute()
	switch {
	case err == nil:
		return 0
	case prompt.IsAborted(err):
		return 130
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	// Share-side failures get their own status so scripts can tell them
	// apart from usage and configuration errors.
	var serr *sharefs.Error
	switch {
	case errors.Is(err, sharefs.ErrConnect):
		return 3
	case errors.As(err, &serr):
		return 2
	}
	return 1
}
