package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/sharefs/internal/cli/output"
	"github.com/marmos91/sharefs/internal/cli/timeutil"
	"github.com/marmos91/sharefs/pkg/api/handlers"
	"github.com/marmos91/sharefs/pkg/sharefs"
)

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a directory",
	Long: `List the entries of a directory on the share. The share root is
listed when no path is given. Entries that cannot be decoded are skipped.

Examples:
  sharefs ls --share //fileserver/docs reports/2024
  sharefs ls -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Write a file's content to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(cmd, func(ctx context.Context, conn handlers.FS) error {
			data, err := conn.ReadFile(ctx, args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		})
	},
}

var putCmd = &cobra.Command{
	Use:   "put <local|-> <path>",
	Short: "Upload a file, replacing any existing one",
	Long: `Upload a local file to the share. Use "-" to read from stdin.
An existing remote file is truncated and replaced.

Examples:
  sharefs put report.pdf reports/2024/report.pdf
  echo hello | sharefs put - notes/hello.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runPut,
}

var statRich bool

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Show size and type, or full metadata with --rich",
	Long: `Show whether a path is a directory and, for files, its size.

Without --rich the size is measured by reading the file. With --rich a
single metadata query reports size, allocation size, link count,
attributes and timestamps.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStat,
}

var mkdirParents bool

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a directory",
	Long: `Create a directory. With -p missing parents are created and an
existing directory is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(cmd, func(ctx context.Context, conn handlers.FS) error {
			mkdir := conn.Mkdir
			if mkdirParents {
				mkdir = conn.MkdirAll
			}
			if err := mkdir(ctx, args[0]); err != nil {
				return err
			}
			return printResult(cmd, pathResult{Path: args[0]}, "created "+args[0])
		})
	},
}

var mvReplace bool

var mvCmd = &cobra.Command{
	Use:   "mv <from> <to>",
	Short: "Rename a file or directory",
	Long: `Rename a file or directory within the share. Both paths are relative
to the share root. The server refuses to overwrite an existing target
unless --replace is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(cmd, func(ctx context.Context, conn handlers.FS) error {
			if err := conn.Rename(ctx, args[0], args[1], mvReplace); err != nil {
				return err
			}
			return printResult(cmd, renameResult{From: args[0], To: args[1]}, fmt.Sprintf("renamed %s -> %s", args[0], args[1]))
		})
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists <path>",
	Short: "Report whether a path is a file, a directory or absent",
	Long: `Print "file", "directory" or "not_found". The exit status is 0 in all
three cases; failures to reach the share are errors.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConn(cmd, func(ctx context.Context, conn handlers.FS) error {
			kind, err := conn.Exists(ctx, args[0])
			if err != nil {
				return err
			}
			p, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			if p.Structured() {
				return p.Print(existsResult{Path: args[0], Kind: kind, Exists: kind != sharefs.KindNotFound})
			}
			p.Println(kind.String())
			return nil
		})
	},
}

func init() {
	statCmd.Flags().BoolVar(&statRich, "rich", false, "query full metadata")
	mkdirCmd.Flags().BoolVarP(&mkdirParents, "parents", "p", false, "create missing parents")
	mvCmd.Flags().BoolVar(&mvReplace, "replace", false, "overwrite an existing target")
}

type pathResult struct {
	Path string `json:"path" yaml:"path"`
}

type putResult struct {
	Path string `json:"path" yaml:"path"`
	Size int    `json:"size" yaml:"size"`
}

type renameResult struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

type existsResult struct {
	Path   string       `json:"path" yaml:"path"`
	Kind   sharefs.Kind `json:"kind" yaml:"kind"`
	Exists bool         `json:"exists" yaml:"exists"`
}

type statResult struct {
	Path        string `json:"path" yaml:"path"`
	Size        int64  `json:"size" yaml:"size"`
	IsDirectory bool   `json:"is_directory" yaml:"is_directory"`
}

// printResult prints data for -o json|yaml and msg otherwise.
func printResult(cmd *cobra.Command, data any, msg string) error {
	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}
	if p.Structured() {
		return p.Print(data)
	}
	p.Success(msg)
	return nil
}

// entryTable renders a listing like ls -l.
type entryTable []sharefs.DirEntry

func (e entryTable) Headers() []string {
	return []string{"KIND", "SIZE", "MODIFIED", "NAME"}
}

func (e entryTable) Rows() [][]string {
	now := time.Now()
	rows := make([][]string, len(e))
	for i, entry := range e {
		size := output.HumanSize(entry.Size)
		kind := "-"
		if entry.Kind == sharefs.KindDirectory {
			size, kind = "-", "d"
		}
		rows[i] = []string{kind, size, timeutil.FormatShort(entry.ModTime, now), entry.Name}
	}
	return rows
}

func runLs(cmd *cobra.Command, args []string) error {
	rel := ""
	if len(args) == 1 {
		rel = args[0]
	}
	return withConn(cmd, func(ctx context.Context, conn handlers.FS) error {
		entries, err := conn.ListDir(ctx, rel)
		if err != nil {
			return err
		}
		p, err := newPrinter(cmd)
		if err != nil {
			return err
		}
		if p.Structured() {
			if entries == nil {
				entries = []sharefs.DirEntry{}
			}
			return p.Print(entries)
		}
		if len(entries) == 0 {
			return nil
		}
		return p.Print(entryTable(entries))
	})
}

func runPut(cmd *cobra.Command, args []string) error {
	data, err := readLocal(cmd, args[0])
	if err != nil {
		return err
	}
	return withConn(cmd, func(ctx context.Context, conn handlers.FS) error {
		if err := conn.WriteFile(ctx, args[1], data); err != nil {
			return err
		}
		return printResult(cmd, putResult{Path: args[1], Size: len(data)},
			fmt.Sprintf("wrote %s to %s", output.HumanSize(uint64(len(data))), args[1]))
	})
}

func readLocal(cmd *cobra.Command, src string) ([]byte, error) {
	if src == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src, err)
	}
	return data, nil
}

func runStat(cmd *cobra.Command, args []string) error {
	rel := ""
	if len(args) == 1 {
		rel = args[0]
	}
	return withConn(cmd, func(ctx context.Context, conn handlers.FS) error {
		p, err := newPrinter(cmd)
		if err != nil {
			return err
		}

		if statRich {
			stats, found, err := conn.FileStats(ctx, rel)
			if err != nil {
				return err
			}
			if !found {
				return errors.New("no such file or directory: " + rel)
			}
			if p.Structured() {
				return p.Print(stats)
			}
			return p.Print(richFields(stats))
		}

		res, err := conn.Stat(ctx, rel)
		if err != nil {
			return err
		}
		if p.Structured() {
			return p.Print(statResult{Path: rel, Size: res.Size, IsDirectory: res.IsDirectory})
		}
		path, err := sharefs.Resolve(conn.Root(), rel)
		if err != nil {
			return err
		}
		var f output.Fields
		f.Add("Path", path)
		if res.IsDirectory {
			f.Add("Type", "directory")
		} else {
			f.Add("Type", "file")
			f.Add("Size", strconv.FormatInt(res.Size, 10))
		}
		return p.Print(f)
	})
}

func richFields(s sharefs.FileStats) output.Fields {
	var f output.Fields
	f.Add("Type", s.Kind.String())
	f.Add("Size", strconv.FormatUint(s.Size, 10))
	f.Add("Allocated", strconv.FormatUint(s.AllocationSize, 10))
	f.Add("Links", strconv.FormatUint(uint64(s.LinkCount), 10))
	f.Add("Attributes", fmt.Sprintf("0x%08X", s.Attributes))
	f.Add("Modified", timeutil.FormatUnix(s.Mtime))
	f.Add("Accessed", timeutil.FormatUnix(s.Atime))
	f.Add("Changed", timeutil.FormatUnix(s.Ctime))
	return f
}
