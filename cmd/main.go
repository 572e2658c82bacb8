package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/app"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/common"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/config"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/github"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/highlight"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/logging"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags by GoReleaser / Taskfile.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// ── Multi-instance resource tuning ──────────────────────────────
	//
	// Reviewers often keep several zpr instances open across terminals,
	// one per PR. Each Go runtime defaults to GOMAXPROCS = NumCPU, so
	// five instances on a 10-core machine would compete with 50 OS
	// threads for 10 cores.
	//
	// A TUI spends most of its time waiting on I/O (gh subprocesses,
	// fsnotify, terminal input). Two OS threads cover the actual Go
	// work (render + message dispatch); the gh calls run externally
	// and are unaffected by GOMAXPROCS.
	//
	// If the user explicitly sets GOMAXPROCS, we respect that.
	if os.Getenv("GOMAXPROCS") == "" {
		maxProcs := 2
		if n := runtime.NumCPU(); n < maxProcs {
			maxProcs = n
		}
		runtime.GOMAXPROCS(maxProcs)
	}

	// Limit the GC target to 50 MB. Even with a large PR snapshot in
	// memory the app should stay well under that; triggering the GC
	// earlier keeps RSS low when several instances share the machine.
	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zpr OWNER/REPO PR_NUMBER",
		Short: "A terminal UI for reviewing GitHub pull requests",
		Long: `zpr is a keyboard-first, terminal-based pull request reviewer.

It loads a PR's description, commits, and per-commit diffs through the
gh CLI, lets you read the diff with vim-style navigation, queue inline
comments on diff lines and ranges, and submit the whole batch as a
single review (comment, approve, or request changes).

With a bare PR number the repository is inferred from the origin
remote of the current directory.

Examples:
  zpr cli/cli 1234
  zpr 1234
  zpr cli/cli 1234 --refresh
  zpr cli/cli 1234 --review-commit 3f2a9b1`,
		Args:          cobra.RangeArgs(1, 2),
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"zpr %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	rootCmd.Flags().Bool("refresh", false, "Bypass the snapshot cache and fetch fresh PR data")
	rootCmd.Flags().String("review-commit", "", "SHA (or prefix) of the commit to review at startup")
	rootCmd.Flags().String("log-level", "warn", "Log level: trace, debug, info, warn, error")

	return rootCmd
}

// parseRepoArg splits an OWNER/REPO argument.
func parseRepoArg(arg string) (owner, repo string, err error) {
	parts := strings.Split(arg, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected OWNER/REPO, got %q", arg)
	}
	return parts[0], parts[1], nil
}

// inferRepo resolves OWNER/REPO from the origin remote of the current
// directory's repository. Handles both SSH and HTTPS remote forms.
func inferRepo() (owner, repo string, err error) {
	out, err := exec.Command("git", "remote", "get-url", "origin").Output()
	if err != nil {
		return "", "", fmt.Errorf("no OWNER/REPO given and origin remote not readable: %w", err)
	}
	url := strings.TrimSpace(string(out))
	url = strings.TrimSuffix(url, ".git")

	var path string
	switch {
	case strings.Contains(url, "github.com:"):
		path = url[strings.Index(url, "github.com:")+len("github.com:"):]
	case strings.Contains(url, "github.com/"):
		path = url[strings.Index(url, "github.com/")+len("github.com/"):]
	default:
		return "", "", fmt.Errorf("origin remote %q is not a GitHub repository", url)
	}
	return parseRepoArg(path)
}

func runApp(cmd *cobra.Command, args []string) error {
	var owner, repo, numberArg string
	var err error
	if len(args) == 2 {
		owner, repo, err = parseRepoArg(args[0])
		numberArg = args[1]
	} else {
		owner, repo, err = inferRepo()
		numberArg = args[0]
	}
	if err != nil {
		return err
	}
	number, err := strconv.Atoi(numberArg)
	if err != nil || number <= 0 {
		return fmt.Errorf("expected a positive PR number, got %q", numberArg)
	}

	refresh, _ := cmd.Flags().GetBool("refresh")
	reviewCommit, _ := cmd.Flags().GetString("review-commit")
	logLevel, _ := cmd.Flags().GetString("log-level")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to a file in the cache directory; stderr belongs to the TUI.
	logFile := filepath.Join(cfg.Cache.Dir, "zpr.log")
	closeLog, err := logging.Setup(logLevel, logFile)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer closeLog()

	highlight.SetDeltaCommand(cfg.Diff.ExternalCommand)

	cliSvc := github.NewCLIService(owner, repo, number)

	// Wrap with a TTL cache to deduplicate gh calls within a refresh
	// cycle. The TTL comes from config; API writes invalidate it.
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	svc := github.NewCachedService(cliSvc, ttl)

	model := app.New(svc, cfg)
	if refresh {
		model.ForceRefresh()
	}
	if reviewCommit != "" {
		model.SelectCommit(reviewCommit)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Reload when another zpr instance (or a refresh script) rewrites
	// this PR's snapshot.
	snapPath := github.SnapshotPath(cfg.Cache.Dir, owner, repo, number)
	if watchCh, stop, watchErr := watcher.Watch(snapPath, 500*time.Millisecond); watchErr == nil {
		defer stop()
		go func() {
			for range watchCh {
				p.Send(common.SnapshotChangedMsg{})
			}
		}()
	}

	_, err = p.Run()
	return err
}

// buildVersionCmd creates the `zpr version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Printf("zpr %s\n", version)
			fmt.Printf("  commit:  %s\n", commit)
			fmt.Printf("  built:   %s\n", date)
			fmt.Printf("  go:      %s\n", runtime.Version())
			fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `zpr completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for zpr.

Examples:
  # Bash (add to ~/.bashrc)
  zpr completion bash > /etc/bash_completion.d/zpr

  # Zsh (add to ~/.zshrc before compinit)
  zpr completion zsh > "${fpath[1]}/_zpr"

  # Fish
  zpr completion fish > ~/.config/fish/completions/zpr.fish

  # PowerShell
  zpr completion powershell > zpr.ps1`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}
