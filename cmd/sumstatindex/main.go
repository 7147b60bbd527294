// Build the chromosome position index of a GWAS summary statistics file, so
// that later plots can seek straight to each chromosome.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/carbocation/gwasplot"
	_ "github.com/carbocation/gwasplot/compileinfoprint"
	"github.com/carbocation/gwasplot/sumstats"
	"github.com/carbocation/pfx"
	log "github.com/sirupsen/logrus"
)

func main() {
	var filename, layoutName, delimiter, cachePath string
	var names sumstats.HeaderNames

	flag.StringVar(&filename, "file", "", "Path to a summary statistics file sorted by chromosome. May be gzipped, and may be a gs:// path.")
	flag.StringVar(&layoutName, "layout", "DEFAULT", "Column layout of the file. One of: "+sumstats.LayoutNames())
	flag.StringVar(&names.Chromosome, "chr", "", "Override the layout's chromosome column name")
	flag.StringVar(&names.SNP, "snp", "", "Override the layout's SNP column name")
	flag.StringVar(&names.Position, "bp", "", "Override the layout's base position column name")
	flag.StringVar(&names.PValue, "p", "", "Override the layout's p-value column name")
	flag.StringVar(&delimiter, "delimiter", "", "Field delimiter: whitespace (default), tab, space, or a single character")
	flag.StringVar(&cachePath, "cache", "", "Optional. Path of a SQLite sidecar in which to store (or from which to load) the index. Use 'auto' for <file>"+sumstats.CacheSuffix+" (for gs:// inputs, <basename>"+sumstats.CacheSuffix+" in the working directory)")
	flag.Parse()

	if filename == "" {
		fmt.Fprintln(os.Stderr, `Scans a summary statistics file once and prints, on stdout, the offset at
which each chromosome's records begin, e.g. {"1": 13, "2": 1048576}. That
text can be handed back to the plotting tools with -positions so they do not
need to rescan the file.`)
		flag.Usage()
		os.Exit(1)
	}

	if cachePath == "auto" {
		cachePath = sumstats.DefaultCachePath(filename)
	}

	if err := run(filename, layoutName, delimiter, cachePath, names); err != nil {
		log.Fatalln(pfx.Err(err))
	}

	log.Println("sumstatindex completed")
}

func run(filename, layoutName, delimiter, cachePath string, names sumstats.HeaderNames) error {
	ctx := context.Background()

	layout, err := sumstats.LookupLayout(layoutName)
	if err != nil {
		return err
	}
	layout = layout.Override(names)
	if delimiter != "" {
		if layout.Delimiter, err = sumstats.ParseDelimiter(delimiter); err != nil {
			return err
		}
	}

	client, err := gwasplot.NewStorageClientIfNeeded(ctx, filename)
	if err != nil {
		return err
	}

	f, err := sumstats.Open(ctx, filename, layout, client)
	if err != nil {
		return err
	}

	var positions sumstats.ChromosomePositions
	if cachePath != "" {
		positions, err = f.LoadOrBuildPositions(ctx, cachePath)
	} else {
		positions, err = f.Positions(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Println(sumstats.FormatPositions(positions))

	return nil
}
