package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/marmos91/sharefs/internal/cli/prompt"
	"github.com/marmos91/sharefs/pkg/api"
	"github.com/marmos91/sharefs/pkg/config"
	"github.com/marmos91/sharefs/pkg/sharefs"
	"github.com/marmos91/sharefs/pkg/smbclient/memory"
)

// useMemoryShare points every command at one in-memory share for the
// duration of the test.
func useMemoryShare(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	srv := memory.NewServer("files", "docs")
	prev := connectShare
	connectShare = func(ctx context.Context, _ *config.Config, m sharefs.Metrics) (*sharefs.Conn, error) {
		return sharefs.Connect(ctx, srv, `\\files\docs`, "guest", "")
	}
	t.Cleanup(func() { connectShare = prev })
}

// resetFlags restores every flag of cmd and its children to its default.
// Cobra keeps parsed values between Execute calls on the same tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := run(t, stdin, args...)
	require.NoError(t, err, "sharefs %s", strings.Join(args, " "))
	return out
}

func TestFileCommands(t *testing.T) {
	useMemoryShare(t)

	mustRun(t, "", "mkdir", "-p", "a/b")
	mustRun(t, "hello", "put", "-", "a/b/note.txt")

	assert.Equal(t, "hello", mustRun(t, "", "cat", "a/b/note.txt"))
	assert.Equal(t, "file\n", mustRun(t, "", "exists", "a/b/note.txt"))
	assert.Equal(t, "directory\n", mustRun(t, "", "exists", "a/b"))
	assert.Equal(t, "not_found\n", mustRun(t, "", "exists", "a/missing"))

	var entries []sharefs.DirEntry
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "", "ls", "a/b", "-o", "json")), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "note.txt", entries[0].Name)
	assert.Equal(t, sharefs.KindFile, entries[0].Kind)
	assert.EqualValues(t, 5, entries[0].Size)

	var st statResult
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "", "stat", "a/b/note.txt", "-o", "json")), &st))
	assert.EqualValues(t, 5, st.Size)
	assert.False(t, st.IsDirectory)

	mustRun(t, "", "mv", "a/b/note.txt", "a/moved.txt")
	assert.Equal(t, "not_found\n", mustRun(t, "", "exists", "a/b/note.txt"))
	assert.Equal(t, "hello", mustRun(t, "", "cat", "a/moved.txt"))
}

func TestLsEmptyDirectory(t *testing.T) {
	useMemoryShare(t)
	mustRun(t, "", "mkdir", "empty")

	assert.Equal(t, "", mustRun(t, "", "ls", "empty"))
	assert.JSONEq(t, "[]", mustRun(t, "", "ls", "empty", "-o", "json"))
}

func TestMkdirWithoutParents(t *testing.T) {
	useMemoryShare(t)

	_, err := run(t, "", "mkdir", "x/y")
	assert.Error(t, err)

	mustRun(t, "", "mkdir", "x")
	_, err = run(t, "", "mkdir", "x")
	assert.ErrorIs(t, err, sharefs.ErrAlreadyExists)

	// -p must not leak into the next invocation.
	mustRun(t, "", "mkdir", "-p", "x")
	_, err = run(t, "", "mkdir", "x")
	assert.ErrorIs(t, err, sharefs.ErrAlreadyExists)
}

func TestStatMissing(t *testing.T) {
	useMemoryShare(t)

	_, err := run(t, "", "stat", "--rich", "nope.txt")
	assert.Error(t, err)
}

func TestRm(t *testing.T) {
	useMemoryShare(t)
	mustRun(t, "", "mkdir", "-p", "tree/sub")
	mustRun(t, "one", "put", "-", "tree/a.txt")
	mustRun(t, "two", "put", "-", "tree/sub/b.txt")

	t.Run("NonEmptyWithoutRecursive", func(t *testing.T) {
		_, err := run(t, "", "rm", "tree")
		assert.ErrorIs(t, err, sharefs.ErrDirectoryNotEmpty)
	})

	t.Run("MissingIsNotAnError", func(t *testing.T) {
		mustRun(t, "", "rm", "tree/none.txt")
	})

	t.Run("RefusesShareRoot", func(t *testing.T) {
		_, err := run(t, "", "rm", "-r", "-f", "")
		assert.Error(t, err)
		assert.Equal(t, "directory\n", mustRun(t, "", "exists", "tree"))
	})

	t.Run("RecursiveNeedsForceWithoutTerminal", func(t *testing.T) {
		if prompt.IsTerminal(os.Stdin) {
			t.Skip("stdin is a terminal")
		}
		_, err := run(t, "", "rm", "-r", "tree")
		assert.Error(t, err)
		assert.Equal(t, "directory\n", mustRun(t, "", "exists", "tree"))
	})

	t.Run("RecursiveForce", func(t *testing.T) {
		out := mustRun(t, "", "rm", "-r", "-f", "tree")
		assert.Contains(t, out, "4 entries")
		assert.Equal(t, "not_found\n", mustRun(t, "", "exists", "tree"))
	})
}

func TestMvReplace(t *testing.T) {
	useMemoryShare(t)
	mustRun(t, "old", "put", "-", "a.txt")
	mustRun(t, "new", "put", "-", "b.txt")

	_, err := run(t, "", "mv", "b.txt", "a.txt")
	assert.Error(t, err)

	mustRun(t, "", "mv", "--replace", "b.txt", "a.txt")
	assert.Equal(t, "new", mustRun(t, "", "cat", "a.txt"))
}

func TestConfigCommands(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "sharefs.yaml")

	mustRun(t, "", "config", "init", "--config", path, "--share", "//fs01/docs", "--user", "alice")

	_, err := run(t, "", "config", "init", "--config", path)
	assert.ErrorIs(t, err, config.ErrConfigExists)

	assert.Contains(t, mustRun(t, "", "config", "validate", "--config", path), "valid")

	var shown struct {
		Share struct {
			Address  string `json:"address"`
			Username string `json:"username"`
		} `json:"share"`
	}
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, "", "config", "show", "--config", path, "-o", "json")), &shown))
	assert.Equal(t, "//fs01/docs", shown.Share.Address)
	assert.Equal(t, "alice", shown.Share.Username)

	// Without -o the root default "table" prints YAML.
	assert.Contains(t, mustRun(t, "", "config", "show", "--config", path), "address: //fs01/docs")

	schema := mustRun(t, "", "config", "schema")
	assert.True(t, json.Valid([]byte(schema)))
}

func TestConfigInitRejectsBadShare(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sharefs.yaml")

	_, err := run(t, "", "config", "init", "--config", path, "--share", "fileserver")
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestConfigHashPassword(t *testing.T) {
	if prompt.IsTerminal(os.Stdin) {
		t.Skip("stdin is a terminal")
	}

	out := mustRun(t, "correct horse\n", "config", "hash-password")
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")))

	_, err := run(t, "short\n", "config", "hash-password")
	assert.Error(t, err)
}

func TestTokenRequiresAuth(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := run(t, "", "token", "alice")
	assert.ErrorContains(t, err, "disabled")
}

func TestVersion(t *testing.T) {
	assert.Equal(t, Version+"\n", mustRun(t, "", "version", "--short"))
	assert.Contains(t, mustRun(t, "", "version"), "Go version")
}

func TestCompletion(t *testing.T) {
	for shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			assert.Contains(t, mustRun(t, "", "completion", shell), "sharefs")
		})
	}

	_, err := run(t, "", "completion", "tcsh")
	require.Error(t, err)
}

func TestGatewayMode(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	srv := memory.NewServer("files", "docs")
	conn, err := sharefs.Connect(context.Background(), srv, `\\files\docs`, "guest", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ts := httptest.NewServer(api.NewRouter(api.Config{}, conn, nil, nil, nil))
	t.Cleanup(ts.Close)

	gw := "--gateway=" + ts.URL
	mustRun(t, "", "mkdir", gw, "-p", "a/b")
	mustRun(t, "via gateway", "put", gw, "-", "a/b/c.txt")
	assert.Equal(t, "via gateway", mustRun(t, "", "cat", gw, "a/b/c.txt"))
	assert.Equal(t, "file\n", mustRun(t, "", "exists", gw, "a/b/c.txt"))

	// The write went to the share behind the gateway.
	data, err := conn.ReadFile(context.Background(), "a/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "via gateway", string(data))

	assert.Contains(t, mustRun(t, "", "stat", gw, "a/b/c.txt"), `\\files\docs\a\b\c.txt`)

	mustRun(t, "", "rm", gw, "-r", "-f", "a")
	assert.Equal(t, "not_found\n", mustRun(t, "", "exists", gw, "a"))

	_, err = run(t, "", "ls", "--gateway=http://127.0.0.1:1")
	assert.ErrorContains(t, err, "not ready")
}
