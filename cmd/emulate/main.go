// Command emulate replays a ttyrec session through the terminal emulator
// core and writes one grid-dump CSV per changed frame.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dcssrec/ttyrecgen/decode"
	"github.com/dcssrec/ttyrecgen/dump"
	"github.com/dcssrec/ttyrecgen/screen"
	"github.com/dcssrec/ttyrecgen/ttyrec"
)

var (
	ttyrecPath string
	outDir     string
)

func main() {
	root := &cobra.Command{
		Use:   "emulate",
		Short: "Replay a ttyrec session into grid-dump CSVs",
		RunE:  runEmulate,
	}
	root.Flags().StringVar(&ttyrecPath, "path", "", "path to the ttyrec file (required)")
	root.Flags().StringVar(&outDir, "out", "data", "directory to write dump CSVs into")
	root.MarkFlagRequired("path")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEmulate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	f, err := os.Open(ttyrecPath)
	if err != nil {
		log.Printf("emulate: %v", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Printf("emulate: %v", err)
		os.Exit(1)
	}

	framer := ttyrec.NewFramer(f)
	dec := decode.NewDecoder()
	grid := screen.NewGrid()
	var snap dump.Snapshotter

	frameNo := 0
	for {
		select {
		case <-ctx.Done():
			fmt.Print("\x1b[0m")
			os.Stdout.Sync()
			log.Printf("emulate: interrupted at frame %d", frameNo)
			os.Exit(1)
		default:
		}

		payload, _, _, err := framer.NextFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("emulate: %v", err)
			os.Exit(1)
		}
		frameNo++

		events, err := dec.Feed(payload)
		if err != nil {
			log.Printf("emulate: %v", err)
			os.Exit(1)
		}
		for _, ev := range events {
			grid.Apply(ev)
		}

		records, changed := snap.Dump(grid)
		if !changed {
			continue
		}

		path := filepath.Join(outDir, strconv.Itoa(frameNo)+".csv")
		out, err := os.Create(path)
		if err != nil {
			log.Printf("emulate: %v", err)
			os.Exit(1)
		}
		err = dump.WriteCSV(out, records)
		out.Close()
		if err != nil {
			log.Printf("emulate: %v", err)
			os.Exit(1)
		}
	}

	return nil
}
