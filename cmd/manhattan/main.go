// Render a Manhattan plot from GWAS summary statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/carbocation/gwasplot"
	_ "github.com/carbocation/gwasplot/compileinfoprint"
	"github.com/carbocation/gwasplot/manhattan"
	"github.com/carbocation/gwasplot/sumstats"
	"github.com/carbocation/pfx"
	log "github.com/sirupsen/logrus"
)

type config struct {
	Filename  string
	Layout    string
	Delimiter string
	NegLog10P bool
	Names     sumstats.HeaderNames

	Positions string
	CachePath string

	Groups string
	Opts   manhattan.Options

	OutDir string
	Name   string
	Style  manhattan.Style
}

func main() {
	cfg := config{Style: manhattan.DefaultStyle()}

	flag.StringVar(&cfg.Filename, "file", "", "Path to a summary statistics file sorted by chromosome. May be gzipped, and may be a gs:// path.")
	flag.StringVar(&cfg.Layout, "layout", "DEFAULT", "Column layout of the file. One of: "+sumstats.LayoutNames())
	flag.StringVar(&cfg.Names.Chromosome, "chr", "", "Override the layout's chromosome column name")
	flag.StringVar(&cfg.Names.SNP, "snp", "", "Override the layout's SNP column name")
	flag.StringVar(&cfg.Names.Position, "bp", "", "Override the layout's base position column name")
	flag.StringVar(&cfg.Names.PValue, "p", "", "Override the layout's p-value column name")
	flag.BoolVar(&cfg.NegLog10P, "neglog10p", false, "The p-value column already holds -log10(p)")
	flag.StringVar(&cfg.Delimiter, "delimiter", "", "Field delimiter: whitespace (default), tab, space, or a single character")
	flag.StringVar(&cfg.Positions, "positions", "", `Optional. Precomputed chromosome positions from sumstatindex, e.g. {"1": 13, "2": 1048576}`)
	flag.StringVar(&cfg.CachePath, "cache", "", "Optional. SQLite sidecar holding the chromosome positions. Use 'auto' for <file>"+sumstats.CacheSuffix+" (for gs:// inputs, <basename>"+sumstats.CacheSuffix+" in the working directory)")
	flag.StringVar(&cfg.Groups, "groups", "", "Optional. JSON list of chromosome groups, one image per group, e.g. [[1,2,3],[4,5,6]]. Default: all chromosomes in one image.")
	flag.StringVar(&cfg.Opts.Assembly, "assembly", "", "Optional. grch37 or grch38: scale positions by chromosome length instead of by the observed range")
	flag.Float64Var(&cfg.Opts.Significance, "significance", manhattan.DefaultSignificance, "P-value at which to draw the significance line")
	flag.StringVar(&cfg.OutDir, "out", ".", "Directory to write images into")
	flag.StringVar(&cfg.Name, "name", "manhattan", "Images are named <name>__<group>.<format>")
	flag.StringVar(&cfg.Style.Format, "format", cfg.Style.Format, "png or svg")
	flag.IntVar(&cfg.Style.Width, "width", cfg.Style.Width, "Image width in pixels")
	flag.IntVar(&cfg.Style.Height, "height", cfg.Style.Height, "Image height in pixels")
	flag.Parse()

	if cfg.Filename == "" {
		flag.Usage()
		os.Exit(1)
	}

	if cfg.CachePath == "auto" {
		cfg.CachePath = sumstats.DefaultCachePath(cfg.Filename)
	}

	if err := run(cfg); err != nil {
		log.Fatalln(pfx.Err(err))
	}

	log.Println("manhattan completed")
}

func run(cfg config) error {
	ctx := context.Background()

	layout, err := sumstats.LookupLayout(cfg.Layout)
	if err != nil {
		return err
	}
	layout = layout.Override(cfg.Names)
	if cfg.NegLog10P {
		layout.NegLog10P = true
	}
	if cfg.Delimiter != "" {
		if layout.Delimiter, err = sumstats.ParseDelimiter(cfg.Delimiter); err != nil {
			return err
		}
	}

	if cfg.Opts.Groups, err = manhattan.ParseGroups(cfg.Groups); err != nil {
		return err
	}

	client, err := gwasplot.NewStorageClientIfNeeded(ctx, cfg.Filename)
	if err != nil {
		return err
	}

	f, err := sumstats.Open(ctx, cfg.Filename, layout, client)
	if err != nil {
		return err
	}
	log.Printf("Reading %s (%s) with columns %+v", f.Path(), f.Source().DataType, f.Header())

	positions, err := sumstats.ParsePositions(cfg.Positions)
	if err != nil {
		return err
	}

	switch {
	case positions != nil:
		if err := f.SetPositions(positions); err != nil {
			return err
		}
	case cfg.CachePath != "":
		if _, err := f.LoadOrBuildPositions(ctx, cfg.CachePath); err != nil {
			return err
		}
	}

	plot, err := manhattan.Build(ctx, f, cfg.Opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}

	paths, err := plot.WriteFiles(cfg.OutDir, cfg.Name, cfg.Style)
	if err != nil {
		return err
	}

	for _, path := range paths {
		fmt.Println(path)
	}

	return nil
}
