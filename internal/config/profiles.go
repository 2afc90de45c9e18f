package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"frec/internal/errors"
	"frec/internal/frecency"
)

// ProfilesFileName is the decay profiles file under .frec/
const ProfilesFileName = "profiles.toml"

// Profile is a named decay shape
type Profile struct {
	HalfLife   float64 `toml:"half_life"`
	BaseWeight float64 `toml:"base_weight"`
}

// ProfilesFile is the root structure of profiles.toml
type ProfilesFile struct {
	Profiles map[string]Profile `toml:"profiles"`
}

// builtinProfiles are always available; file entries with the same name
// override them.
func builtinProfiles() map[string]Profile {
	return map[string]Profile{
		"hot":    {HalfLife: 50, BaseWeight: 1.0},
		"steady": {HalfLife: 300, BaseWeight: 1.0},
		"deep":   {HalfLife: 1000, BaseWeight: 1.0},
	}
}

// LoadProfiles returns the built-in decay profiles merged with any defined
// in .frec/profiles.toml under repoRoot
func LoadProfiles(repoRoot string) (map[string]Profile, error) {
	profiles := builtinProfiles()

	path := filepath.Join(repoRoot, ConfigDir, ProfilesFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return profiles, nil
	}

	var file ProfilesFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, errors.NewFrecError(
			errors.InvalidConfig,
			"Failed to parse "+ProfilesFileName,
			err,
			errors.GetSuggestedFixes(errors.InvalidConfig),
		)
	}

	for name, profile := range file.Profiles {
		profiles[name] = profile
	}
	return profiles, nil
}

// ResolveProfile looks up a named profile and returns its decay shape
func ResolveProfile(repoRoot, name string) (frecency.DecayParams, error) {
	profiles, err := LoadProfiles(repoRoot)
	if err != nil {
		return frecency.DecayParams{}, err
	}

	profile, ok := profiles[name]
	if !ok {
		known := make([]string, 0, len(profiles))
		for n := range profiles {
			known = append(known, n)
		}
		sort.Strings(known)
		return frecency.DecayParams{}, errors.NewFrecError(
			errors.InvalidConfig,
			"Unknown decay profile",
			nil,
			nil,
		).WithDetails(map[string]interface{}{
			"profile": name,
			"known":   known,
		})
	}

	return frecency.DecayParams{
		HalfLife:   profile.HalfLife,
		BaseWeight: profile.BaseWeight,
	}, nil
}
