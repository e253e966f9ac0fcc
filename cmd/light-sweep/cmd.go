package main

import (
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os"
)

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "light-sweep",
		Short: "Ambient light gated RGB color sweep",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Lookup("debug").Changed {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newTraceCmd())
	rootCmd.PersistentFlags().Bool("debug", false, "Turn on debug logging.")

	return rootCmd
}

var (
	buildTime    = "unknown"
	buildVersion = "dev"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s (built: %s)\n", buildVersion, buildTime)
		},
	}
}

func newStartCmd() *cobra.Command {
	configFile := ""
	cmd := cobra.Command{
		Use:   "start",
		Short: "Starts sweeping the LED strip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return startSweep(configFile, cmd.Flags().Lookup("debug").Changed)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Read the configuration from this YAML file.")

	return &cmd
}

func newTraceCmd() *cobra.Command {
	ticks, every := 0, 0
	cmd := cobra.Command{
		Use:   "trace",
		Short: "Print the sweep without driving any hardware",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			trace(os.Stdout, ticks, every)
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "n", 600, "Number of ticks to run.")
	cmd.Flags().IntVarP(&every, "every", "e", 50, "Print the state every this many ticks.")

	return &cmd
}
