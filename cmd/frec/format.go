package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"frec/internal/frecency"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// formatRankResult renders a frecency result for stdout. Text mode prints
// one "SCORE\tPATH" line per entry (or just the path with pathOnly); JSON
// mode emits the full result including provenance.
func formatRankResult(result *frecency.Result, format OutputFormat, pathOnly bool) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSONIndented(result)
	case FormatText:
		var b strings.Builder
		for _, entry := range result.Entries {
			if pathOnly {
				b.WriteString(entry.Path)
				b.WriteString("\n")
			} else {
				b.WriteString(fmt.Sprintf("%.4f\t%s\n", entry.Score, entry.Path))
			}
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSONIndented(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// formatDoctorHuman renders doctor checks with pass/fail icons and
// suggested fixes
func formatDoctorHuman(resp *DoctorResponse) string {
	var b strings.Builder

	b.WriteString("frec doctor\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	healthIcon := "✓"
	healthText := "All checks passed"
	if !resp.Healthy {
		healthIcon = "✗"
		healthText = "Issues found"
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", healthIcon, healthText))

	for _, check := range resp.Checks {
		var icon string
		switch check.Status {
		case "pass":
			icon = "✓"
		case "skip":
			icon = "-"
		default:
			icon = "✗"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", icon, check.Name, check.Message))

		if len(check.SuggestedFixes) > 0 {
			b.WriteString("  Suggested fixes:\n")
			for _, fix := range check.SuggestedFixes {
				b.WriteString(fmt.Sprintf("    - %s\n", fix.Description))
				if fix.Command != "" {
					b.WriteString(fmt.Sprintf("      $ %s\n", fix.Command))
				}
			}
		}
	}

	return b.String()
}

// formatConfigHuman renders the effective configuration
func formatConfigHuman(resp *ConfigResponse) string {
	var b strings.Builder

	b.WriteString("frec configuration\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(fmt.Sprintf("Repository: %s\n\n", resp.RepoRoot))
	b.WriteString(fmt.Sprintf("Max commits:   %d\n", resp.Config.MaxCommits))
	b.WriteString(fmt.Sprintf("Sort:          %s\n", resp.Config.Sort))
	b.WriteString(fmt.Sprintf("Half-life:     %g\n", resp.Config.Decay.HalfLife))
	b.WriteString(fmt.Sprintf("Base weight:   %g\n", resp.Config.Decay.BaseWeight))
	if resp.Config.Decay.Profile != "" {
		b.WriteString(fmt.Sprintf("Profile:       %s\n", resp.Config.Decay.Profile))
	}
	b.WriteString(fmt.Sprintf("Renames:       %s\n", resp.Config.Git.Renames))
	b.WriteString(fmt.Sprintf("Log level:     %s (%s)\n", resp.Config.Logging.Level, resp.Config.Logging.Format))

	if len(resp.Profiles) > 0 {
		b.WriteString("\nDecay profiles:\n")
		for _, p := range resp.Profiles {
			b.WriteString(fmt.Sprintf("  %-10s half-life %g, base weight %g\n", p.Name, p.HalfLife, p.BaseWeight))
		}
	}
	if len(resp.Groups) > 0 {
		b.WriteString("\nPath groups:\n")
		for _, g := range resp.Groups {
			b.WriteString(fmt.Sprintf("  %-10s %s\n", g.Name, strings.Join(g.Prefixes, ", ")))
		}
	}

	return b.String()
}
