// Package chrpos knows the length of each chromosome in the common human
// genome assemblies, so that positions can be placed on a shared scale.
package chrpos

import (
	"fmt"
	"sort"
	"strings"
)

// UCSC chromInfo chromEnd values for the autosomes and chrX (numbered 23).
var assemblies = map[string]map[int]int64{
	"grch37": {
		1: 249250621, 2: 243199373, 3: 198022430, 4: 191154276, 5: 180915260,
		6: 171115067, 7: 159138663, 8: 146364022, 9: 141213431, 10: 135534747,
		11: 135006516, 12: 133851895, 13: 115169878, 14: 107349540, 15: 102531392,
		16: 90354753, 17: 81195210, 18: 78077248, 19: 59128983, 20: 63025520,
		21: 48129895, 22: 51304566, 23: 155270560,
	},
	"grch38": {
		1: 248956422, 2: 242193529, 3: 198295559, 4: 190214555, 5: 181538259,
		6: 170805979, 7: 159345973, 8: 145138636, 9: 138394717, 10: 133797422,
		11: 135086622, 12: 133275309, 13: 114364328, 14: 107043718, 15: 101991189,
		16: 90338345, 17: 83257441, 18: 80373285, 19: 58617616, 20: 64444167,
		21: 46709983, 22: 50818468, 23: 156040895,
	},
}

func Assemblies() string {
	names := make([]string, 0, len(assemblies))
	for k := range assemblies {
		names = append(names, k)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

// Length returns the length in bases of chromosome in assembly. Valid values
// for assembly are grch37 and grch38.
func Length(assembly string, chromosome int) (int64, error) {
	lengths, exists := assemblies[strings.ToLower(assembly)]
	if !exists {
		return 0, fmt.Errorf("assembly %s is not known. Valid assemblies include: %s", assembly, Assemblies())
	}

	length, exists := lengths[chromosome]
	if !exists {
		return 0, fmt.Errorf("chromosome %d is not known in %s", chromosome, assembly)
	}

	return length, nil
}

// Fraction places position on [0, 1] along its chromosome. Positions past the
// end of the chromosome (e.g. from a different assembly) are clamped to 1.
func Fraction(assembly string, chromosome int, position int64) (float64, error) {
	length, err := Length(assembly, chromosome)
	if err != nil {
		return 0, err
	}

	if position >= length {
		return 1, nil
	}
	if position < 0 {
		return 0, nil
	}

	return float64(position) / float64(length), nil
}
