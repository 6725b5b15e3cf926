package cmd

import (
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oniamix/oniamix/hep"
	"github.com/oniamix/oniamix/hep/frag"
	"github.com/oniamix/oniamix/hep/hepmc"
)

var (
	showerMaxEvents int     // Partonic configurations to process (0 = all)
	showerMaxRetry  int     // Hadronization attempts per configuration
	minLeptonPt     float64 // Minimum lepton pT in GeV
	maxLeptonEta    float64 // Maximum lepton |eta|
	minPhiPt        float64 // Minimum companion phi pT in GeV (enriched only)
	showerSeed      int64   // Seed for hadronization draws
	tunePath        string  // Optional YAML tune overrides
)

// showerCmd is the standard sampler: retry hadronization of each
// partonic configuration until a quarkonium decays to an in-acceptance
// muon pair.
var showerCmd = &cobra.Command{
	Use:   "shower INPUT.lhe OUTPUT",
	Short: "Sample hadronized events with a quarkonium dilepton selection",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runShower(args[0], args[1], false)
	},
}

// showerPhiCmd is the enriched sampler: same dilepton selection plus a
// companion phi requirement, with strange production biased once per
// run to raise the phi yield.
var showerPhiCmd = &cobra.Command{
	Use:   "shower-phi INPUT.lhe OUTPUT",
	Short: "Sample hadronized events with phi enrichment and a companion-phi selection",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runShower(args[0], args[1], true)
	},
}

func runShower(input, output string, enriched bool) {
	cfg := hep.DefaultShowerConfig()
	cfg.MaxEvents = showerMaxEvents
	cfg.MaxRetry = showerMaxRetry
	cfg.Enriched = enriched
	cfg.Seed = showerSeed
	cfg.Cuts.MinLeptonPt = minLeptonPt
	cfg.Cuts.MaxLeptonEta = maxLeptonEta
	cfg.Cuts.MinPhiPt = minPhiPt

	logrus.Infof("shower run %s: %s -> %s (enriched=%v, maxRetry=%d)",
		uuid.NewString(), input, output, enriched, cfg.MaxRetry)

	tune := frag.DefaultTune()
	if tunePath != "" {
		var err error
		tune, err = frag.LoadTune(tunePath, tune)
		if err != nil {
			logrus.Fatalf("Tune initialization failed: %v", err)
		}
	}
	if enriched {
		tune = frag.EnrichedTune(tune)
	}

	in, err := os.Open(input)
	if err != nil {
		logrus.Fatalf("Cannot open input file: %v", err)
	}
	defer in.Close()

	source, err := hep.NewLHESource(in)
	if err != nil {
		logrus.Fatalf("Generator initialization failed: %v", err)
	}

	out, err := os.Create(output)
	if err != nil {
		logrus.Fatalf("Cannot open output file: %v", err)
	}
	defer out.Close()
	writer := hepmc.NewWriter(out)

	runner := &hep.Runner{
		Source:    source,
		Hadronize: frag.New(tune, hep.NewPartitionedRNG(hep.NewRunKey(cfg.Seed))),
		Writer:    writer,
		Predicate: hep.NewPredicate(cfg.Cuts, enriched),
		Config:    cfg,
	}
	if err := runner.Run(); err != nil {
		if errors.Is(err, hep.ErrAborted) {
			logrus.Fatalf("Event generation aborted prematurely: %v", err)
		}
		logrus.Fatalf("Shower run failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		logrus.Fatalf("Finalizing output failed: %v", err)
	}

	runner.Metrics.Print(output)
}

func init() {
	for _, c := range []*cobra.Command{showerCmd, showerPhiCmd} {
		c.Flags().IntVar(&showerMaxEvents, "nevents", 0, "Number of events to process (0 = all)")
		c.Flags().IntVar(&showerMaxRetry, "max-retry", 1000, "Maximum hadronization retries per event")
		c.Flags().Float64Var(&minLeptonPt, "min-lepton-pt", 2.5, "Minimum lepton pT in GeV")
		c.Flags().Float64Var(&maxLeptonEta, "max-lepton-eta", 2.4, "Maximum lepton |eta|")
		c.Flags().Int64Var(&showerSeed, "seed", 42, "Seed for hadronization draws")
		c.Flags().StringVar(&tunePath, "tune", "", "YAML file with fragmentation tune overrides")
	}
	showerPhiCmd.Flags().Float64Var(&minPhiPt, "min-phi-pt", 0, "Minimum companion phi pT in GeV")

	rootCmd.AddCommand(showerCmd)
	rootCmd.AddCommand(showerPhiCmd)
}
