package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/brnsen/rigwatch"
	"github.com/brnsen/rigwatch/param"
	"github.com/brnsen/rigwatch/persist"
	"github.com/brnsen/rigwatch/watch"
)

// newBackend picks a persistence backend from the --storage-dir flag: a
// FileBackend rooted there, or a MemoryBackend when the flag is empty
// (bench runs, scenario demos).
func newBackend(cmd *cobra.Command) persist.Backend {
	dir, _ := cmd.Flags().GetString(flagStorageDir)
	if dir == "" {
		return persist.NewMemoryBackend()
	}
	return persist.NewFileBackend(dir)
}

// newDashboard assembles a Dashboard with the canonical four-page watch
// layout (spec.md §4.6) and boots the persistence store against now.
func newDashboard(cmd *cobra.Command, now time.Time) (*rigwatch.Dashboard, error) {
	store := param.NewStore()

	watchList := watch.NewList(store)
	if err := watchList.SetupDefaults(); err != nil {
		return nil, err
	}

	persistStore := persist.NewStore(newBackend(cmd))
	if err := persistStore.Boot(now); err != nil {
		return nil, err
	}

	return rigwatch.NewDashboard(store, watchList, persistStore), nil
}
