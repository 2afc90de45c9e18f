package config

import (
	"os"
	"path/filepath"
	"sort"

	gotoml "github.com/pelletier/go-toml/v2"

	"frec/internal/errors"
)

// GroupsFileName is the path groups file under .frec/
const GroupsFileName = "groups.toml"

// GroupsFile is the root structure of groups.toml: named sets of path
// prefixes selectable with --group
type GroupsFile struct {
	Groups map[string][]string `toml:"groups"`
}

// LoadGroups reads .frec/groups.toml under repoRoot. A missing file means
// no groups are defined.
func LoadGroups(repoRoot string) (*GroupsFile, error) {
	path := filepath.Join(repoRoot, ConfigDir, GroupsFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GroupsFile{Groups: map[string][]string{}}, nil
		}
		return nil, errors.NewFrecError(errors.InvalidConfig, "Failed to read "+GroupsFileName, err, nil)
	}

	var file GroupsFile
	if err := gotoml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewFrecError(
			errors.InvalidConfig,
			"Failed to parse "+GroupsFileName,
			err,
			errors.GetSuggestedFixes(errors.InvalidConfig),
		)
	}
	if file.Groups == nil {
		file.Groups = map[string][]string{}
	}
	return &file, nil
}

// ResolveGroups expands group names into the union of their path prefixes.
// Group membership feeds filter construction, so an unknown group is an
// InvalidFilter.
func ResolveGroups(repoRoot string, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	file, err := LoadGroups(repoRoot)
	if err != nil {
		return nil, err
	}

	var prefixes []string
	for _, name := range names {
		group, ok := file.Groups[name]
		if !ok {
			known := make([]string, 0, len(file.Groups))
			for n := range file.Groups {
				known = append(known, n)
			}
			sort.Strings(known)
			return nil, errors.NewFrecError(
				errors.InvalidFilter,
				"Unknown path group",
				nil,
				nil,
			).WithDetails(map[string]interface{}{
				"group": name,
				"known": known,
			})
		}
		prefixes = append(prefixes, group...)
	}
	return prefixes, nil
}
