package models

import (
	"fmt"
	"strings"
)

const xposChromFactor = int64(1e9)

// Chromosomes in xpos code order; code = index + 1.
var Chromosomes = []string{
	"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12",
	"13", "14", "15", "16", "17", "18", "19", "20", "21", "22", "X", "Y", "M",
}

var chromCodes = func() map[string]int64 {
	codes := make(map[string]int64, len(Chromosomes))
	for i, c := range Chromosomes {
		codes[c] = int64(i + 1)
	}
	return codes
}()

// NormalizeChrom strips a "chr" prefix and maps MT to M.
func NormalizeChrom(chrom string) string {
	chrom = strings.TrimPrefix(strings.TrimPrefix(chrom, "chr"), "CHR")
	if strings.EqualFold(chrom, "MT") {
		return "M"
	}
	return strings.ToUpper(chrom)
}

// Xpos encodes a chromosome and position as a single sortable integer.
func Xpos(chrom string, pos int) (int64, error) {
	code, ok := chromCodes[NormalizeChrom(chrom)]
	if !ok {
		return 0, fmt.Errorf("unknown chromosome %q", chrom)
	}
	if pos < 1 || int64(pos) >= xposChromFactor {
		return 0, fmt.Errorf("position %d out of range", pos)
	}
	return code*xposChromFactor + int64(pos), nil
}

// ChromPos decodes an xpos. An unknown chromosome code yields "".
func ChromPos(xpos int64) (string, int) {
	code := xpos / xposChromFactor
	pos := int(xpos % xposChromFactor)
	if code < 1 || code > int64(len(Chromosomes)) {
		return "", pos
	}
	return Chromosomes[code-1], pos
}
