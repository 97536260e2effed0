package main

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"campusopt/internal/config"
	"campusopt/internal/domain"
	"campusopt/internal/inputs"
)

// bindCommonFlags registers the RunConfig flags shared by every subcommand,
// in the teacher's flag-per-parameter style (cli.go's cmdGen), and binds
// each to v so that, in generate and solve, an optional config file
// (--config) can supply the same values with flags taking precedence.
// score and audit take no config file.
func bindCommonFlags(cmd *cobra.Command, v *viper.Viper, cfg *config.RunConfig) {
	flags := cmd.Flags()
	flags.StringVar(&cfg.CoursesFile, "courses", cfg.CoursesFile, "merged course data JSON file")
	flags.StringVar(&cfg.RoomsFile, "rooms", cfg.RoomsFile, "class-type-to-rooms JSON file")
	flags.StringVar(&cfg.PreferencesFile, "preferences", cfg.PreferencesFile, "optional teacher preferences JSON file")
	flags.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output directory for reports/checkpoints")

	_ = v.BindPFlag("courses", flags.Lookup("courses"))
	_ = v.BindPFlag("rooms", flags.Lookup("rooms"))
	_ = v.BindPFlag("preferences", flags.Lookup("preferences"))
	_ = v.BindPFlag("out", flags.Lookup("out"))
}

// loadConfigFile reads an optional YAML/JSON config file (spec.md §4.6)
// into v; a missing file is not an error (CLI flags/defaults apply).
func loadConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("campusopt: read config file %s: %w", path, err)
	}
	return nil
}

// loadIndex loads and validates both required JSON inputs plus the
// optional preferences file, building the Index of spec.md §4.1. Any
// failure here is a spec.md §7 class-1 input-shape error and must abort
// before the main loop.
func loadIndex(cfg config.RunConfig) (*domain.Index, domain.Preferences, error) {
	courses, err := inputs.LoadCourses(cfg.CoursesFile)
	if err != nil {
		return nil, nil, err
	}
	rooms, err := inputs.LoadRooms(cfg.RoomsFile)
	if err != nil {
		return nil, nil, err
	}
	slots := domain.BuildSlotNames(domain.DefaultDayNames, domain.DefaultStartTimes)

	ix, err := domain.BuildIndex(courses, rooms, slots)
	if err != nil {
		return nil, nil, err
	}
	prefs, err := inputs.LoadPreferences(cfg.PreferencesFile, ix)
	if err != nil {
		return nil, nil, err
	}
	return ix, prefs, nil
}

// runOutputDir tags dir with a fresh run id (spec.md's AMBIENT STACK
// "Identifiers" section), giving each run's checkpoints/reports their own
// collision-free subdirectory.
func runOutputDir(dir string) string {
	return filepath.Join(dir, uuid.NewString())
}
