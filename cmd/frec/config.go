package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"frec/internal/backends/git"
	"frec/internal/config"
)

var (
	configRepo   string
	configFormat string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration that rank would use: built-in defaults layered
with .frec/config.json and .frec.yml, plus the available decay profiles and
path groups.`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().StringVarP(&configRepo, "repo", "D", ".", "Repository location (any directory inside it)")
	configCmd.Flags().StringVar(&configFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(configCmd)
}

// ProfileEntry is one named decay profile in the config printout
type ProfileEntry struct {
	Name       string  `json:"name"`
	HalfLife   float64 `json:"halfLife"`
	BaseWeight float64 `json:"baseWeight"`
}

// GroupEntry is one named path group in the config printout
type GroupEntry struct {
	Name     string   `json:"name"`
	Prefixes []string `json:"prefixes"`
}

// ConfigResponse is the effective configuration plus its surroundings
type ConfigResponse struct {
	RepoRoot string         `json:"repoRoot"`
	Config   *config.Config `json:"config"`
	Profiles []ProfileEntry `json:"profiles"`
	Groups   []GroupEntry   `json:"groups,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) {
	repoRoot, err := git.ResolveRoot(configRepo, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	profiles, err := config.LoadProfiles(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	groups, err := config.LoadGroups(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	resp := &ConfigResponse{RepoRoot: repoRoot, Config: cfg}
	for name, p := range profiles {
		resp.Profiles = append(resp.Profiles, ProfileEntry{Name: name, HalfLife: p.HalfLife, BaseWeight: p.BaseWeight})
	}
	sort.Slice(resp.Profiles, func(i, j int) bool { return resp.Profiles[i].Name < resp.Profiles[j].Name })
	for name, prefixes := range groups.Groups {
		resp.Groups = append(resp.Groups, GroupEntry{Name: name, Prefixes: prefixes})
	}
	sort.Slice(resp.Groups, func(i, j int) bool { return resp.Groups[i].Name < resp.Groups[j].Name })

	var output string
	if OutputFormat(configFormat) == FormatJSON {
		output, err = formatJSONIndented(resp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
	} else {
		output = formatConfigHuman(resp)
	}
	fmt.Print(output)
}
