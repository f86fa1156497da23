package cmd

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "rigwatch",
	Short:        "Secondary dashboard core for heavy-duty trucks",
	Long:         "rigwatch decodes SAE J1939 and J1708/J1587 bus traffic into a shared parameter store, watch list and persistence layer.",
	SilenceUsage: true,
}

// Execute adds every child command to rootCmd and runs it. Called once by
// main.main.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.WithError(err).Fatal("rigwatch exited with an error")
	}
}

const (
	flagStorageDir = "storage-dir"
	flagDebug      = "debug"
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String(flagStorageDir, "", "directory backing the NVS-style persistence store (empty = in-memory only)")
	pf.BoolP(flagDebug, "d", false, "enable debug-level logging")

	cobra.OnInitialize(func() {
		debug, _ := rootCmd.PersistentFlags().GetBool(flagDebug)
		if debug {
			log.SetLevel(log.DebugLevel)
		}
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	})
}
