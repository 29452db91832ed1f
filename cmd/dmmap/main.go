package main

import (
	"fmt"
	"log/slog"
	"os"

	dmmap "github.com/dezashibi-c-projects/a-simple-xplat-mmap"
	"github.com/spf13/cobra"
)

var Version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:          "dmmap",
	Short:        "Inspect files through memory mappings",
	Version:      Version,
	SilenceUsage: true,
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print the mapped size of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := dmmap.Open(args[0], dmmap.ReadOnly, openOptions()...)
		if err != nil {
			return err
		}
		defer m.Close()

		fmt.Printf("File size: %d bytes\n", m.Len())
		return nil
	},
}

var catCmd = &cobra.Command{
	Use:   "cat <file>",
	Short: "Write the mapped contents to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := dmmap.Open(args[0], dmmap.ReadOnly, openOptions()...)
		if err != nil {
			return err
		}
		defer m.Close()

		_, err = os.Stdout.Write(m.Bytes())
		return err
	},
}

func openOptions() []dmmap.Option {
	if !verbose {
		return nil
	}
	return []dmmap.Option{dmmap.WithLogLevel(slog.LevelDebug)}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log open and close operations")
	rootCmd.AddCommand(infoCmd, catCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
