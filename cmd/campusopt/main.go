// Command campusopt is the run controller of spec.md §4.6: it loads the
// JSON inputs of §6, builds the index tables, and drives either the
// genetic core (generate) or the exact backend (solve), plus score/audit
// utilities over a persisted assignment. The command tree follows the
// teacher repository's cobra layout (cli.go's cmdSchedule/cmdGen/cmdScore
// subcommands), with github.com/spf13/viper added so that generate and
// solve accept an optional config file (--config). The config file sets
// only the courses, rooms, preferences and out values; every other
// parameter comes from flags or defaults.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(log.Ltime)

	root := &cobra.Command{
		Use:   "campusopt",
		Short: "University timetabling optimization engine",
		Long: "campusopt assigns every course offering to a (teacher, room, slot) triple\n" +
			"satisfying hard feasibility constraints while minimizing a weighted sum of\n" +
			"soft-objective penalties (teacher/group gaps, room changes, preferences).",
	}

	root.AddCommand(newGenerateCommand())
	root.AddCommand(newSolveCommand())
	root.AddCommand(newScoreCommand())
	root.AddCommand(newAuditCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
