package sumstats

import (
	"fmt"
	"sort"
	"strings"
)

// Layout describes where a summary statistics format keeps the columns we
// need, and whether its p-value column already holds -log10(p).
type Layout struct {
	Names     HeaderNames
	NegLog10P bool
	Delimiter rune // Zero means whitespace
}

var Layouts = map[string]Layout{
	"DEFAULT": {
		Names: HeaderNames{Chromosome: "CHR", SNP: "SNP", Position: "BP", PValue: "P"},
	},
	"BOLT": {
		Names:     HeaderNames{Chromosome: "CHR", SNP: "SNP", Position: "BP", PValue: "P_BOLT_LMM_INF"},
		Delimiter: '\t',
	},
	"REGENIE": {
		Names:     HeaderNames{Chromosome: "CHROM", SNP: "ID", Position: "GENPOS", PValue: "LOG10P"},
		NegLog10P: true,
	},
	"PLINK2": {
		Names: HeaderNames{Chromosome: "#CHROM", SNP: "ID", Position: "POS", PValue: "P"},
	},
	"SAIGE": {
		Names: HeaderNames{Chromosome: "CHR", SNP: "SNPID", Position: "POS", PValue: "p.value"},
	},
}

func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

func LookupLayout(name string) (Layout, error) {
	l, exists := Layouts[strings.ToUpper(name)]
	if !exists {
		return Layout{}, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", name, LayoutNames())
	}

	return l, nil
}

// Override replaces any logical column name that is set in names.
func (l Layout) Override(names HeaderNames) Layout {
	if names.Chromosome != "" {
		l.Names.Chromosome = names.Chromosome
	}
	if names.SNP != "" {
		l.Names.SNP = names.SNP
	}
	if names.Position != "" {
		l.Names.Position = names.Position
	}
	if names.PValue != "" {
		l.Names.PValue = names.PValue
	}

	return l
}

// ParseDelimiter reads a delimiter as given on a command line. "" and
// "whitespace" mean runs of whitespace; "tab" and "space" name those runes.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "", "whitespace":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	case "space":
		return ' ', nil
	}

	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character, tab, space or whitespace", s)
	}

	return runes[0], nil
}
