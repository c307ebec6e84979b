// Command render reads grid-dump CSVs and composites each into a PNG
// frame, either sequentially or across a worker pool.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dcssrec/ttyrecgen/batch"
	"github.com/dcssrec/ttyrecgen/compose"
	"github.com/dcssrec/ttyrecgen/fonttile"
	"github.com/dcssrec/ttyrecgen/sprites"
)

var (
	frameFlag    int
	rangeFlag    []int
	parallelFlag bool
	assetsDir    string
	dataDir      string
	fontPath     string
)

func main() {
	root := &cobra.Command{
		Use:   "render",
		Short: "Composite grid-dump CSVs into PNG frames",
		RunE:  runRender,
	}
	root.Flags().IntVar(&frameFlag, "frame", 0, "render only this frame number")
	root.Flags().IntSliceVar(&rangeFlag, "range", nil, "render frames in [A, B] inclusive")
	root.Flags().BoolVar(&parallelFlag, "parallel", false, "use a worker pool across GOMAXPROCS goroutines")
	root.Flags().StringVar(&assetsDir, "assets", ".", "directory containing the sprite sheets and font")
	root.Flags().StringVar(&dataDir, "out", "data", "directory containing dump CSVs and where PNGs are written")
	root.Flags().StringVar(&fontPath, "font", "Menlo.ttc", "font filename under --assets")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sheets, err := sprites.Load(assetsDir)
	if err != nil {
		log.Printf("render: %v", err)
		os.Exit(1)
	}
	font, err := fonttile.NewRenderer(filepath.Join(assetsDir, fontPath))
	if err != nil {
		log.Printf("render: %v", err)
		os.Exit(1)
	}
	renderer := compose.NewRenderer(sheets, font)

	// "--range A B": the slice flag takes only A as its value, and B
	// arrives as a positional argument.
	if len(rangeFlag) == 1 && len(args) == 1 {
		b, err := strconv.Atoi(args[0])
		if err != nil {
			log.Printf("render: --range: %v", err)
			os.Exit(1)
		}
		rangeFlag = append(rangeFlag, b)
	}

	jobs, err := resolveJobs()
	if err != nil {
		log.Printf("render: %v", err)
		os.Exit(1)
	}

	if err := batch.Run(ctx, jobs, renderer, parallelFlag, nil); err != nil {
		if errors.Is(err, context.Canceled) {
			resetTerminal()
			log.Printf("render: user interrupt")
		} else {
			log.Printf("render: %v", err)
		}
		os.Exit(1)
	}
	return nil
}

// resetTerminal clears any graphic rendition an interrupted run may have
// left on the controlling terminal.
func resetTerminal() {
	fmt.Print("\x1b[0m")
	os.Stdout.Sync()
}

func resolveJobs() ([]batch.Job, error) {
	if frameFlag != 0 {
		return []batch.Job{{FrameNo: frameFlag, CSVPath: filepath.Join(dataDir, strconv.Itoa(frameFlag)+".csv")}}, nil
	}
	if len(rangeFlag) == 2 {
		// Frames whose grid was identical to the previous one never got a
		// CSV, so gaps inside the range are expected, not errors.
		var jobs []batch.Job
		for n := rangeFlag[0]; n <= rangeFlag[1]; n++ {
			path := filepath.Join(dataDir, strconv.Itoa(n)+".csv")
			if _, err := os.Stat(path); err != nil {
				continue
			}
			jobs = append(jobs, batch.Job{FrameNo: n, CSVPath: path})
		}
		return jobs, nil
	}
	if len(rangeFlag) != 0 {
		return nil, fmt.Errorf("--range requires exactly two values A B")
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, err
	}
	var jobs []batch.Job
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".csv") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(name, ".csv"))
		if err != nil {
			continue
		}
		jobs = append(jobs, batch.Job{FrameNo: n, CSVPath: filepath.Join(dataDir, name)})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].FrameNo < jobs[j].FrameNo })
	return jobs, nil
}
