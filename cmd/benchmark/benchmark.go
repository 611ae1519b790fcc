package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"

	"github.com/tmpim/bitpast"
	"github.com/tmpim/bitpast/source"
)

var (
	workers    = flag.IntP("workers", "w", 8, "number of concurrent conversions")
	iterations = flag.IntP("iterations", "n", 20, "conversions per worker")
	profile    = flag.String("cpuprofile", "", "write a CPU profile to this file")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: benchmark [options] image")
		os.Exit(1)
	}

	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not create CPU profile:", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintln(os.Stderr, "could not start CPU profile:", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	fs := afero.NewOsFs()
	conv := bitpast.NewConverter(nil)

	for _, mode := range []bitpast.Mode{bitpast.ModeLGR, bitpast.ModeDLGR, bitpast.ModeHGR, bitpast.ModeDHGR} {
		w, h := mode.WorkingSize(false)
		grid, err := source.New(fs, source.FitStretch, w, h).Decode(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		for _, k := range bitpast.Kernels() {
			cfg := bitpast.DefaultConfig()
			cfg.Mode = mode
			cfg.Dither = k.Name

			start := time.Now()
			if err := run(conv, grid, cfg); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			per := time.Since(start) / time.Duration((*workers)*(*iterations))
			fmt.Printf("%-5s %-16s %v/op\n", mode, k.Name, per)
		}
	}
}

func run(conv *bitpast.Converter, grid *bitpast.PixelGrid, cfg bitpast.Config) error {
	var wg sync.WaitGroup
	errs := make(chan error, *workers)

	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < *iterations; i++ {
				req, err := bitpast.NewRequest(grid, cfg)
				if err != nil {
					errs <- err
					return
				}
				if _, err := conv.Convert(context.Background(), req); err != nil {
					errs <- err
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	return <-errs
}
