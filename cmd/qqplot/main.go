// Render a QQ plot of the p-values in a GWAS summary statistics file.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/carbocation/gwasplot"
	_ "github.com/carbocation/gwasplot/compileinfoprint"
	"github.com/carbocation/gwasplot/qqplot"
	"github.com/carbocation/gwasplot/sumstats"
	"github.com/carbocation/pfx"
	log "github.com/sirupsen/logrus"
)

func main() {
	var filename, layoutName, delimiter, bounds, out string
	var negLog10P bool
	var names sumstats.HeaderNames
	style := qqplot.DefaultStyle()

	flag.StringVar(&filename, "file", "", "Path to a summary statistics file. May be gzipped, and may be a gs:// path.")
	flag.StringVar(&layoutName, "layout", "DEFAULT", "Column layout of the file. One of: "+sumstats.LayoutNames())
	flag.StringVar(&names.Chromosome, "chr", "", "Override the layout's chromosome column name")
	flag.StringVar(&names.SNP, "snp", "", "Override the layout's SNP column name")
	flag.StringVar(&names.Position, "bp", "", "Override the layout's base position column name")
	flag.StringVar(&names.PValue, "p", "", "Override the layout's p-value column name")
	flag.BoolVar(&negLog10P, "neglog10p", false, "The p-value column already holds -log10(p)")
	flag.StringVar(&delimiter, "delimiter", "", "Field delimiter: whitespace (default), tab, space, or a single character")
	flag.StringVar(&bounds, "bounds", "", "Optional. Fixed axis bounds as x,y. Ignored, with a warning, if the data exceed them.")
	flag.StringVar(&out, "out", "qq.png", "Path of the image to write")
	flag.StringVar(&style.Format, "format", style.Format, "png or svg")
	flag.IntVar(&style.Width, "width", style.Width, "Image width in pixels")
	flag.IntVar(&style.Height, "height", style.Height, "Image height in pixels")
	flag.Parse()

	if filename == "" {
		flag.Usage()
		os.Exit(1)
	}

	layout, err := sumstats.LookupLayout(layoutName)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	layout = layout.Override(names)
	if negLog10P {
		layout.NegLog10P = true
	}
	if delimiter != "" {
		if layout.Delimiter, err = sumstats.ParseDelimiter(delimiter); err != nil {
			log.Fatalln(pfx.Err(err))
		}
	}

	fixed, err := qqplot.ParseBounds(bounds)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	if err := run(filename, layout, fixed, out, style); err != nil {
		log.Fatalln(pfx.Err(err))
	}

	log.Println("qqplot completed")
}

func run(filename string, layout sumstats.Layout, bounds *qqplot.Bounds, out string, style qqplot.Style) error {
	ctx := context.Background()

	client, err := gwasplot.NewStorageClientIfNeeded(ctx, filename)
	if err != nil {
		return err
	}

	f, err := sumstats.Open(ctx, filename, layout, client)
	if err != nil {
		return err
	}

	plot, err := qqplot.FromSource(ctx, f, bounds)
	if err != nil {
		return err
	}

	if err := plot.WriteFile(out, style); err != nil {
		return err
	}
	log.Printf("Wrote %s", out)

	return nil
}
