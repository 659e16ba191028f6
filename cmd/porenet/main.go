package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"porenet/pkg/config"
	"porenet/pkg/pipeline"
)

const version = "0.1.0"

func main() {
	runSetup := flag.Bool("run_setup", true, "load the raw input volume")
	runSegmentation := flag.Bool("run_segmentation", false, "segment a grayscale volume into a binary pore mask before labeling")
	runMorphology := flag.Bool("run_morphology", false, "compute and report the ternary classification and fractal dimension")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <config.json>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Extracts a pore-network centerline graph from a raw binary volume.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(flag.Arg(0))
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("PORE-NETWORK CENTERLINE EXTRACTION")
	fmt.Println("================================")

	p := pipeline.New(cfg, pipeline.Stages{
		RunSetup:        *runSetup,
		RunSegmentation: *runSegmentation,
		RunMorphology:   *runMorphology,
	})

	start := time.Now()
	if err := p.Run(); err != nil {
		log.Fatalf("run failed: %v", err)
	}
	fmt.Printf("\nCompleted in %.2f seconds. Output written to %s\n", time.Since(start).Seconds(), cfg.Folder)
}
