package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"frec/internal/backends/git"
	"frec/internal/config"
	"frec/internal/frecency"
	"frec/internal/paths"
	"frec/internal/ranking"
)

var (
	rankRepo       string
	rankPaths      []string
	rankGroups     []string
	rankMaxCommits int
	rankProfile    string
	rankHalfLife   float64
	rankBaseWeight float64
	rankAscending  bool
	rankDescending bool
	rankPathOnly   bool
	rankLimit      int
	rankFormat     string
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score and rank files by commit frecency",
	Long: `Score every file touched in the most recent commits and rank them.

Each commit contributes base_weight * exp(-rank/half_life) to every file it
touched, where rank 0 is the newest commit. Frequent and recent touches both
raise a file's score.

Examples:
  frec rank
  frec rank -n 500 -p src -p lib
  frec rank --group core --profile hot
  frec rank --ascending --path-only
  frec rank --format=json`,
	Run: runRank,
}

func init() {
	rankCmd.Flags().StringVarP(&rankRepo, "repo", "D", ".", "Repository location (any directory inside it)")
	rankCmd.Flags().StringArrayVarP(&rankPaths, "paths", "p", nil, "Restrict scoring to files under this path prefix (repeatable)")
	rankCmd.Flags().StringArrayVarP(&rankGroups, "group", "g", nil, "Named path group from .frec/groups.toml (repeatable)")
	rankCmd.Flags().IntVarP(&rankMaxCommits, "max-commits", "n", 3000, "Maximum commits to read (0 = full history)")
	rankCmd.Flags().StringVar(&rankProfile, "profile", "", "Decay profile (hot, steady, deep, or from .frec/profiles.toml)")
	rankCmd.Flags().Float64Var(&rankHalfLife, "half-life", frecency.DefaultHalfLife, "Decay half-life in commit ranks")
	rankCmd.Flags().Float64Var(&rankBaseWeight, "base-weight", frecency.DefaultBaseWeight, "Contribution of a touch at rank 0")
	rankCmd.Flags().BoolVarP(&rankAscending, "ascending", "a", false, "Sort lowest score first")
	rankCmd.Flags().BoolVarP(&rankDescending, "descending", "d", false, "Sort highest score first (default)")
	rankCmd.Flags().BoolVarP(&rankPathOnly, "path-only", "P", false, "Print paths without scores")
	rankCmd.Flags().IntVar(&rankLimit, "limit", 0, "Maximum entries to print (0 = all)")
	rankCmd.Flags().StringVar(&rankFormat, "format", "text", "Output format (text, json)")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) {
	start := time.Now()

	if rankAscending && rankDescending {
		fmt.Fprintln(os.Stderr, "Error: --ascending and --descending are mutually exclusive")
		os.Exit(1)
	}

	repoRoot, err := git.ResolveRoot(rankRepo, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	// Layer flags over the file config, highest wins.
	if cmd.Flags().Changed("max-commits") {
		cfg.MaxCommits = rankMaxCommits
	}
	if rankAscending {
		cfg.Sort = string(ranking.Ascending)
	}
	if rankDescending {
		cfg.Sort = string(ranking.Descending)
	}

	params := cfg.DecayParams()
	profileName := cfg.Decay.Profile
	if cmd.Flags().Changed("profile") {
		profileName = rankProfile
	}
	if profileName != "" {
		params, err = config.ResolveProfile(repoRoot, profileName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if cmd.Flags().Changed("half-life") {
		params.HalfLife = rankHalfLife
	}
	if cmd.Flags().Changed("base-weight") {
		params.BaseWeight = rankBaseWeight
	}
	cfg.Decay.HalfLife = params.HalfLife
	cfg.Decay.BaseWeight = params.BaseWeight

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	prefixes, err := config.ResolveGroups(repoRoot, rankGroups)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	prefixes = append(prefixes, rankPaths...)

	filter, err := paths.NewFilter(prefixes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	adapter, err := git.NewAdapter(repoRoot, git.Options{
		RenamePolicy:   git.RenamePolicy(cfg.Git.Renames),
		CommandTimeout: time.Duration(cfg.Git.CommandTimeoutMs) * time.Millisecond,
		LogTimeout:     time.Duration(cfg.Git.LogTimeoutMs) * time.Millisecond,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine := frecency.NewEngine(adapter, filter, params, repoRoot, logger)
	result, err := engine.Run(context.Background(), frecency.RunOptions{
		MaxCommits: cfg.MaxCommits,
		Direction:  ranking.Direction(cfg.Sort),
		Limit:      rankLimit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output, err := formatRankResult(result, OutputFormat(rankFormat), rankPathOnly)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(output)

	logger.Debug("Rank completed", map[string]interface{}{
		"files":    result.TotalCount,
		"commits":  result.Provenance.CommitsScanned,
		"duration": time.Since(start).Milliseconds(),
	})
}
