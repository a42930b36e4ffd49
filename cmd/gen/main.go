/* Synthesize per-microphone WAV files for a simulated moving point source. */
package main

import (
	"fmt"
	"os"

	loc "github.com/kalenedrael/loc/src"
	"github.com/spf13/pflag"
)

func main() {
	var presetsFile = pflag.StringP("presets", "p", "", "YAML file of trajectory presets, overriding the built-in table. Input file i uses preset i mod len(presets).")
	var logLevel = pflag.StringP("log-level", "l", "info", "Log level: debug, info, warn, error.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gen - synthesize per-microphone audio for a simulated point source.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gen [options] <outfile-prefix> <infile1.wav> [infile2.wav ...]\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	loc.SetLogLevel(*logLevel)

	if pflag.NArg() < 2 {
		pflag.Usage()
		os.Exit(1)
	}

	outPrefix := pflag.Arg(0)
	inFiles := pflag.Args()[1:]

	presets := loc.DefaultPresets()
	if *presetsFile != "" {
		p, err := loc.LoadPresets(*presetsFile)
		if err != nil {
			loc.Logger.Fatal("loading presets", "err", err)
		}
		presets = p
	}

	streams, err := loc.LoadStreams(inFiles)
	if err != nil {
		loc.Logger.Fatal("loading input streams", "err", err)
	}

	cfg := loc.GenerateConfig{
		OutPrefix: outPrefix,
		Mics:      loc.DefaultMics(),
		Presets:   presets,
	}

	if err := loc.Generate(cfg, streams); err != nil {
		loc.Logger.Fatal("generating output streams", "err", err)
	}
}
