package cmd

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oniamix/oniamix/hep"
	"github.com/oniamix/oniamix/hep/hepmc"
)

var mixMaxEvents int // Maximum compound events to produce (0 = all)

// mixCmd merges one event per iteration from each input source into a
// single compound legacy-schema event: passthrough conversion for one
// source, DPS/TPS-style superposition for two or more.
var mixCmd = &cobra.Command{
	Use:   "mix OUTPUT INPUT...",
	Short: "Merge events from multiple sources into compound events",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		output := args[0]
		inputs := args[1:]

		logrus.Infof("mix run %s: %d source(s) -> %s", uuid.NewString(), len(inputs), output)

		var (
			sources []hep.RecordReader
			closers []io.Closer
		)
		for _, path := range inputs {
			f, err := os.Open(path)
			if err != nil {
				logrus.Fatalf("Cannot open input file: %v", err)
			}
			closers = append(closers, f)
			sources = append(sources, hepmc.NewReader(f))
		}
		defer func() {
			for _, c := range closers {
				c.Close()
			}
		}()

		out, err := os.Create(output)
		if err != nil {
			logrus.Fatalf("Cannot open output file: %v", err)
		}
		defer out.Close()
		writer := hepmc.NewLegacyWriter(out)

		mixer := &hep.Mixer{
			Sources: sources,
			Writer:  writer,
			Config:  hep.MixConfig{MaxEvents: mixMaxEvents},
		}
		if err := mixer.Run(); err != nil {
			logrus.Fatalf("Mixing failed: %v", err)
		}
		if err := writer.Close(); err != nil {
			logrus.Fatalf("Finalizing output failed: %v", err)
		}

		mixer.Metrics.Print(output)
	},
}

func init() {
	mixCmd.Flags().IntVar(&mixMaxEvents, "nevents", 0, "Maximum events to process (0 = all)")
	rootCmd.AddCommand(mixCmd)
}
