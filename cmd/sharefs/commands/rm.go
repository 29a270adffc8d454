package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/marmos91/sharefs/internal/cli/prompt"
	"github.com/marmos91/sharefs/internal/logger"
	"github.com/marmos91/sharefs/pkg/api/handlers"
	"github.com/marmos91/sharefs/pkg/sharefs"
)

var (
	rmRecursive bool
	rmForce     bool
)

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Remove a file or directory",
	Long: `Remove a file or an empty directory. A path that does not exist is
not an error.

With -r a directory is removed together with its contents, deepest entries
first. A recursive removal asks for confirmation unless --force is given;
without a terminal --force is required.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func init() {
	rmCmd.Flags().BoolVarP(&rmRecursive, "recursive", "r", false, "remove directories and their contents")
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "skip confirmation")
}

func runRm(cmd *cobra.Command, args []string) error {
	target := args[0]
	return withConn(cmd, func(ctx context.Context, conn handlers.FS) error {
		if !rmRecursive {
			if err := conn.Remove(ctx, target); err != nil {
				return err
			}
			return printResult(cmd, pathResult{Path: target}, "removed "+target)
		}

		segs, err := sharefs.Segments(target)
		if err != nil {
			return err
		}
		if len(segs) == 0 {
			return errors.New("refusing to remove the share root")
		}

		kind, err := conn.Exists(ctx, target)
		if err != nil {
			return err
		}
		if kind == sharefs.KindDirectory && !rmForce {
			if !prompt.IsTerminal(os.Stdin) {
				return errors.New("refusing to remove a directory tree without --force")
			}
			ok, err := prompt.Confirm(fmt.Sprintf("Remove %s and everything below it?", target), false)
			if err != nil {
				if prompt.IsAborted(err) {
					return nil
				}
				return err
			}
			if !ok {
				return nil
			}
		}

		n, err := removeTree(ctx, conn, target, kind)
		if err != nil {
			return err
		}
		return printResult(cmd, pathResult{Path: target}, fmt.Sprintf("removed %s (%d entries)", target, n))
	})
}

// removeTree removes rel and, when it is a directory, everything below it.
// It returns the number of entries removed.
func removeTree(ctx context.Context, conn handlers.FS, rel string, kind sharefs.Kind) (int, error) {
	switch kind {
	case sharefs.KindNotFound:
		return 0, nil
	case sharefs.KindFile:
		return 1, conn.Remove(ctx, rel)
	}

	entries, err := conn.ListDir(ctx, rel)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		n, err := removeTree(ctx, conn, path.Join(rel, e.Name), e.Kind)
		removed += n
		if err != nil {
			return removed, err
		}
	}
	logger.DebugCtx(ctx, "removing directory", logger.Path(rel), logger.Entries(len(entries)))
	return removed + 1, conn.Remove(ctx, rel)
}
