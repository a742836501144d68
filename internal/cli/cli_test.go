package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/yaklabco/golift/internal/cli"
	"github.com/yaklabco/golift/internal/configloader"
	"github.com/yaklabco/golift/pkg/block"
	"github.com/yaklabco/golift/pkg/fsutil"
	"github.com/yaklabco/golift/pkg/paf"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "golift" {
		t.Errorf("expected Use to be 'golift', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedSubcommands := []string{"lift", "roundtrip", "invert", "paf", "check", "init", "version", "statuses"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}

	rt, _, err := cmd.Find([]string{"rt"})
	if err != nil || rt.Name() != "roundtrip" {
		t.Errorf("expected alias rt to resolve to roundtrip, got %v (%v)", rt, err)
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"lift": {
			"blocks", "pair", "reverse", "input-format", "policy", "strict",
			"allow-split", "stitch", "stats", "jobs", "output", "format", "compact", "title",
		},
		"roundtrip": {
			"blocks-ab", "blocks-ba", "pair", "input-format", "strict", "allow-split",
			"fail-on-mismatch", "stats", "jobs", "output", "format",
		},
		"check":  {"ignore", "ext", "verbose", "jobs", "output", "format"},
		"invert": {"output"},
		"paf":    {"output", "sort"},
		"init":   {"force", "format", "output"},
	}

	cmd := cli.NewRootCommand(testInfo())
	for name, flags := range tests {
		sub, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Fatalf("%s command not found: %v", name, err)
		}
		for _, flagName := range flags {
			if sub.Flags().Lookup(flagName) == nil {
				t.Errorf("expected flag %q to exist on %s command", flagName, name)
			}
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedFlags := []string{"debug", "config", "color"}

	for _, flagName := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2026-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"golift", "1.2.3", "abc123", "2026-01-01"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("version output missing %q: %s", want, out.String())
		}
	}
}

func TestCheckCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	checkCmd, _, err := cmd.Find([]string{"check"})
	if err != nil {
		t.Fatalf("check command not found: %v", err)
	}

	err = checkCmd.Args(checkCmd, []string{"a.tsv", "b.tsv", "maps/"})
	if err != nil {
		t.Errorf("check command should accept arbitrary args, got error: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "broken pipe", err: fmt.Errorf("write: %w", syscall.EPIPE), want: cli.ExitSuccess},
		{name: "mismatch", err: fmt.Errorf("%w: 1 of 2", cli.ErrRoundTripMismatch), want: cli.ExitMismatch},
		{name: "explicit code", err: &cli.ExitError{Code: cli.ExitInvalidUsage, Err: errors.New("bad flag")}, want: cli.ExitInvalidUsage},
		{name: "config", err: &configloader.ValidationError{Field: "policy", Message: "bad"}, want: cli.ExitDataError},
		{name: "parse error", err: &block.ParseError{Line: 3, Err: block.ErrMalformedRecord}, want: cli.ExitDataError},
		{name: "invalid block", err: fmt.Errorf("load: %w", block.ErrInvalidBlock), want: cli.ExitDataError},
		{name: "paf line", err: paf.ErrMalformedLine, want: cli.ExitDataError},
		{name: "paf cigar", err: paf.ErrMissingCIGAR, want: cli.ExitDataError},
		{name: "not found", err: fmt.Errorf("open: %w", fsutil.ErrNotFound), want: cli.ExitIOError},
		{name: "path error", err: &os.PathError{Op: "open", Path: "x", Err: os.ErrPermission}, want: cli.ExitIOError},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestSilent(t *testing.T) {
	t.Parallel()

	if !cli.Silent(cli.ErrRoundTripMismatch) {
		t.Error("mismatch exit should not be logged")
	}
	if !cli.Silent(syscall.EPIPE) {
		t.Error("broken pipe should not be logged")
	}
	if cli.Silent(errors.New("boom")) {
		t.Error("internal errors should be logged")
	}
}
