package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		verbose     bool
		templateURL string
		ref         string
		paths       string
		hooksPath   string
		target      string
	)

	rootCmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Copy shared project scaffolding from a template repository",
		Long: "Fetch a template repository and copy its CI workflows, git hooks and lint configs into the current repository. " +
			"Paths that already exist in the repository are never overwritten. " +
			"The hooks directory is registered as core.hooksPath in the repository's local git config.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(stderr, verbose)

			root, err := resolveTarget(target)
			if err != nil {
				return err
			}
			log.Verbosef("target %s", root)

			if err := checkTarget(root); err != nil {
				return err
			}

			cfg, err := loadRepoConfig(root)
			if err != nil {
				return err
			}
			if cfg != nil {
				log.Verbosef("using %s", filepath.Join(root, repoConfigFileName))
			}

			opts := Options{
				Template:  TemplateSource{URL: templateURL, Ref: ref},
				Paths:     parsePaths(paths),
				HooksPath: hooksPath,
				Target:    root,
				Verbose:   verbose,
			}
			cfg.applyTo(&opts, cmd.Flags().Changed)

			if opts.Template.URL == "" {
				return fmt.Errorf("no template URL")
			}
			if len(opts.Paths) == 0 {
				return fmt.Errorf("no paths to copy")
			}
			opts.HooksPath, err = cleanEntry(opts.HooksPath)
			if err != nil {
				return fmt.Errorf("invalid hooks path: %w", err)
			}

			if err := checkGit(opts.Template); err != nil {
				return err
			}

			result, err := apply(cmd.Context(), opts, log)
			if result != nil {
				printSummary(stdout, result)
			}
			if err != nil {
				return err
			}

			if n := result.Count(StatusFailed); n > 0 {
				return fmt.Errorf("%d of %d paths failed to copy", n, len(result.Outcomes))
			}
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&templateURL, "template-url", defaultTemplateURL, "template repository URL")
	flags.StringVar(&ref, "ref", "", "branch or tag of the template (default: the template's default branch)")
	flags.StringVar(&paths, "paths", strings.Join(defaultPaths, ","), "comma-separated paths to copy from the template")
	flags.StringVar(&hooksPath, "hooks-path", defaultHooksPath, "hooks directory to register as core.hooksPath")
	flags.StringVar(&target, "target", "", "target repository root (default: current directory)")

	rootCmd.SetArgs(args[1:])
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// resolveTarget returns the absolute target path, defaulting to the current
// directory
func resolveTarget(target string) (string, error) {
	if target == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve target %s: %w", target, err)
	}
	return abs, nil
}
