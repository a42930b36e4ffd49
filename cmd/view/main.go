/* Locate a simulated point source in real time from per-microphone WAV files. */
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	loc "github.com/kalenedrael/loc/src"
	"github.com/spf13/pflag"
)

func main() {
	var windowLen = pflag.IntP("window", "w", loc.DefaultWindowL, "XCOR window length L, in samples.")
	var upres = pflag.IntP("upres", "u", loc.DefaultUpres, "XCOR super-resolution upsampling factor.")
	var xres = pflag.IntP("xres", "x", loc.DefaultXRes, "Image plane horizontal resolution.")
	var yres = pflag.IntP("yres", "y", loc.DefaultYRes, "Image plane vertical resolution.")
	var pixelScale = pflag.Float64P("pixel-scale", "s", 0.02, "Meters per pixel of the image plane.")
	var hz = pflag.Float64P("rate", "r", 20.0, "Update rate in Hz.")
	var snapshotPattern = pflag.StringP("snapshot", "S", "", "strftime pattern for PNG snapshots of each frame; disabled if empty.")
	var logLevel = pflag.StringP("log-level", "l", "info", "Log level: debug, info, warn, error.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "view - locate a simulated point source from per-microphone recordings.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: view [options] <infile-prefix> <n-mics>\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	loc.SetLogLevel(*logLevel)

	if pflag.NArg() != 2 {
		pflag.Usage()
		os.Exit(1)
	}

	prefix := pflag.Arg(0)
	nMics, err := strconv.Atoi(pflag.Arg(1))
	if err != nil || nMics < 2 {
		loc.Logger.Fatal("n-mics must be an integer >= 2", "got", pflag.Arg(1))
	}

	filenames := make([]string, nMics)
	for i := range filenames {
		filenames[i] = fmt.Sprintf("%s.%d.wav", prefix, i)
	}

	streams, err := loc.LoadStreams(filenames)
	if err != nil {
		loc.Logger.Fatal("loading per-microphone streams", "err", err)
	}

	mics := loc.DefaultMics()
	if len(mics) != nMics {
		loc.Logger.Fatal("n-mics does not match the default microphone layout", "nMics", nMics, "defaultMics", len(mics))
	}

	engine, err := loc.NewEngine(*windowLen, nMics, *upres)
	if err != nil {
		loc.Logger.Fatal("initializing XCOR engine", "err", err)
	}

	table, err := loc.NewTable(mics, *xres, *yres, loc.Real(*pixelScale), loc.Real(streams[0].Rate), *windowLen, *upres)
	if err != nil {
		loc.Logger.Fatal("precomputing delay table", "err", err)
	}

	var renderer loc.Renderer = loc.LogRenderer{}
	if *snapshotPattern != "" {
		snap, err := loc.NewSnapshotRenderer(*snapshotPattern)
		if err != nil {
			loc.Logger.Fatal("initializing snapshot renderer", "err", err)
		}
		renderer = snap
	}

	run(streams, engine, table, renderer, *windowLen, *upres, *hz)
}

func run(streams []*loc.Stream, engine *loc.Engine, table *loc.Table, renderer loc.Renderer, L, U int, hz float64) {
	nSamples := streams[0].Len()
	nPairs := len(table.Pairs)

	frames := make([][]loc.Real, len(streams))
	corrOut := make([][]loc.Real, nPairs)
	for i := range corrOut {
		corrOut[i] = make([]loc.Real, L*U)
	}
	field := make([]loc.Real, table.XRes*table.YRes)

	cursor := 0
	ticker := time.NewTicker(time.Duration(float64(time.Second) / hz))
	defer ticker.Stop()

	for range ticker.C {
		if cursor+L > nSamples {
			loc.Logger.Info("reached end of input streams, stopping")
			return
		}

		for i, s := range streams {
			frames[i] = s.Samples[cursor : cursor+L]
		}

		if err := engine.Correlate(frames, corrOut); err != nil {
			loc.Logger.Fatal("correlating frame", "err", err)
		}

		if err := table.Accumulate(corrOut, field); err != nil {
			loc.Logger.Fatal("accumulating field", "err", err)
		}

		idx, val := loc.Peak(field)
		peakX, peakY := idx%table.XRes, idx/table.XRes

		if err := renderer.Frame(field, table.XRes, table.YRes, peakX, peakY, val); err != nil {
			loc.Logger.Error("rendering frame", "err", err)
		}

		cursor += L
	}
}
