package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"frec/internal/backends/git"
	"frec/internal/config"
	"frec/internal/errors"
	"frec/internal/paths"
)

var (
	doctorRepo   string
	doctorFormat string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose frec setup issues",
	Long: `Check that git is installed, the repository is reachable, and the
configuration, decay profiles, and path groups parse and validate.

Exits non-zero when any check fails.`,
	Run: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVarP(&doctorRepo, "repo", "D", ".", "Repository location (any directory inside it)")
	doctorCmd.Flags().StringVar(&doctorFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorCheck is one diagnostic result
type DoctorCheck struct {
	Name           string             `json:"name"`
	Status         string             `json:"status"` // pass, fail, skip
	Message        string             `json:"message"`
	SuggestedFixes []errors.FixAction `json:"suggestedFixes,omitempty"`
}

// DoctorResponse aggregates all checks
type DoctorResponse struct {
	Healthy bool          `json:"healthy"`
	Checks  []DoctorCheck `json:"checks"`
}

func runDoctor(cmd *cobra.Command, args []string) {
	resp := &DoctorResponse{Healthy: true}
	add := func(check DoctorCheck) {
		if check.Status == "fail" {
			resp.Healthy = false
		}
		resp.Checks = append(resp.Checks, check)
	}

	fixesFor := func(err error) []errors.FixAction {
		var fe *errors.FrecError
		if stderrors.As(err, &fe) {
			if len(fe.SuggestedFixes) > 0 {
				return fe.SuggestedFixes
			}
			return errors.GetSuggestedFixes(fe.Code)
		}
		return nil
	}

	if _, err := exec.LookPath("git"); err != nil {
		add(DoctorCheck{
			Name:    "git",
			Status:  "fail",
			Message: "git executable not found in PATH",
			SuggestedFixes: []errors.FixAction{
				{Type: errors.InstallTool, Tool: "git", Description: "Install git and ensure it is on PATH"},
			},
		})
	} else {
		add(DoctorCheck{Name: "git", Status: "pass", Message: "git executable found"})
	}

	repoRoot, err := git.ResolveRoot(doctorRepo, 0)
	if err != nil {
		add(DoctorCheck{
			Name:           "repository",
			Status:         "fail",
			Message:        err.Error(),
			SuggestedFixes: fixesFor(err),
		})
	} else {
		add(DoctorCheck{Name: "repository", Status: "pass", Message: "repository at " + repoRoot})
	}

	if repoRoot == "" {
		for _, name := range []string{"config", "profiles", "groups"} {
			add(DoctorCheck{Name: name, Status: "skip", Message: "repository unavailable"})
		}
	} else {
		if cfg, err := config.LoadConfig(repoRoot); err != nil {
			add(DoctorCheck{Name: "config", Status: "fail", Message: err.Error(), SuggestedFixes: fixesFor(err)})
		} else if err := cfg.Validate(); err != nil {
			add(DoctorCheck{Name: "config", Status: "fail", Message: err.Error(), SuggestedFixes: fixesFor(err)})
		} else {
			add(DoctorCheck{Name: "config", Status: "pass", Message: "configuration valid"})
		}

		if profiles, err := config.LoadProfiles(repoRoot); err != nil {
			add(DoctorCheck{Name: "profiles", Status: "fail", Message: err.Error(), SuggestedFixes: fixesFor(err)})
		} else {
			check := DoctorCheck{Name: "profiles", Status: "pass",
				Message: fmt.Sprintf("%d decay profiles available", len(profiles))}
			for name, p := range profiles {
				if p.HalfLife <= 0 || p.BaseWeight <= 0 {
					check.Status = "fail"
					check.Message = fmt.Sprintf("profile %q has non-positive half-life or base weight", name)
					break
				}
			}
			add(check)
		}

		if groups, err := config.LoadGroups(repoRoot); err != nil {
			add(DoctorCheck{Name: "groups", Status: "fail", Message: err.Error(), SuggestedFixes: fixesFor(err)})
		} else {
			check := DoctorCheck{Name: "groups", Status: "pass",
				Message: fmt.Sprintf("%d path groups defined", len(groups.Groups))}
			for name, prefixes := range groups.Groups {
				if _, err := paths.NewFilter(prefixes); err != nil {
					check.Status = "fail"
					check.Message = fmt.Sprintf("group %q: %v", name, err)
					check.SuggestedFixes = fixesFor(err)
					break
				}
			}
			add(check)
		}
	}

	var output string
	if OutputFormat(doctorFormat) == FormatJSON {
		var err error
		output, err = formatJSONIndented(resp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
	} else {
		output = formatDoctorHuman(resp)
	}
	fmt.Print(output)

	if !resp.Healthy {
		os.Exit(1)
	}
}
