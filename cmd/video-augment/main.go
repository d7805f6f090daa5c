package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/menta2k/video-augment/internal/config"
	"github.com/menta2k/video-augment/internal/utils"
	"github.com/menta2k/video-augment/pkg/frameio"
	"github.com/menta2k/video-augment/pkg/types"
)

func main() {
	var in, outDir, boxesPath, configPath, ext, prefix string
	var quality int
	var lossless bool
	var seed int64

	flag.StringVar(&in, "in", "", "input directory of frame images (jpg/png/webp), frame order = filename order")
	flag.StringVar(&outDir, "out", "out", "output directory")
	flag.StringVar(&boxesPath, "boxes", "", "optional box set JSON indexed [frame][object]")
	flag.StringVar(&configPath, "config", "", "pipeline config JSON (built-in default pipeline when omitted)")
	flag.Int64Var(&seed, "seed", 0, "random seed override (0 keeps the config seed)")

	flag.StringVar(&ext, "ext", "", "output format override: jpg|png|webp")
	flag.IntVar(&quality, "quality", 0, "JPEG/WebP output quality override (1-100)")
	flag.BoolVar(&lossless, "lossless", false, "WebP output lossless mode")
	flag.StringVar(&prefix, "prefix", "", "output frame filename prefix override")

	flag.Parse()
	if in == "" {
		log.Fatalf("usage: %s -in framesdir [-boxes boxes.json] [-config pipeline.json] [-out outdir] [-seed n] [-ext jpg|png|webp]", filepath.Base(os.Args[0]))
	}

	cfg := config.Default()
	if configPath != "" {
		if !utils.FileExists(configPath) {
			log.Fatalf("config file not found: %s", configPath)
		}
		var err error
		cfg, err = config.LoadFromFile(configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if ext != "" {
		cfg.Output.Format = ext
	}
	if quality != 0 {
		cfg.Output.Quality = quality
	}
	if lossless {
		cfg.Output.Lossless = true
	}
	if prefix != "" {
		cfg.Output.Prefix = prefix
	}

	pipeline, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}

	c, err := frameio.LoadClip(in)
	if err != nil {
		log.Fatal(err)
	}
	w, h := c.Extent()
	log.Printf("loaded %d frames (%dx%d) from %s", len(c), w, h, in)

	var boxes types.BoxSet
	if boxesPath != "" {
		boxes, err = frameio.LoadBoxes(boxesPath)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("loaded boxes for %d frames from %s", len(boxes), boxesPath)
	}

	outClip, outBoxes, err := pipeline.Apply(c, boxes)
	if err != nil {
		log.Fatal(err)
	}

	if err := frameio.SaveClip(outClip, outDir, cfg.Output.Prefix, cfg.Output.Format, cfg.Output.Quality, cfg.Output.Lossless); err != nil {
		log.Fatal(err)
	}
	ow, oh := outClip.Extent()
	log.Printf("wrote %d frames (%dx%d) to %s", len(outClip), ow, oh, outDir)

	if outBoxes != nil {
		boxesOut := filepath.Join(outDir, "boxes.json")
		if err := frameio.SaveBoxes(outBoxes, boxesOut); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", boxesOut)
	}
}
