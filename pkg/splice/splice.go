// Package splice evaluates intron boundaries of spliced alignments.
package splice

import (
	"strings"

	"github.com/matzehuels/alnglyph/pkg/aln"
	"github.com/matzehuels/alnglyph/pkg/coord"
)

// Result is the verdict for one donor/acceptor pair.
type Result uint8

const (
	Consensus Result = iota
	NonConsensus
)

func (r Result) String() string {
	if r == Consensus {
		return "consensus"
	}
	return "non-consensus"
}

// canonical donor/acceptor pairs.
var canonical = map[[2]string]struct{}{
	{"GT", "AG"}: {},
	{"GC", "AG"}: {},
	{"AT", "AC"}: {},
}

// Classify reports whether the donor dinucleotide of one exon and the
// acceptor of the next form a canonical splice site. Case is ignored.
func Classify(donor, acceptor string) Result {
	if _, ok := canonical[[2]string{strings.ToUpper(donor), strings.ToUpper(acceptor)}]; ok {
		return Consensus
	}
	return NonConsensus
}

// NonConsensusIntrons returns the genomic spans of introns whose flanking
// sites are both known and non-canonical. Exons are given in transcript order;
// negative is set when the genomic strand is minus, in which case exons run
// toward lower genomic positions.
func NonConsensusIntrons(exons []aln.Exon, negative bool) []coord.Range {
	var (
		out     []coord.Range
		donor   string
		prevEnd int
	)
	for i, ex := range exons {
		if i > 0 && donor != "" && ex.Acceptor != "" && Classify(donor, ex.Acceptor) == NonConsensus {
			start := ex.Genomic.From
			if negative {
				start = ex.Genomic.To
			}
			out = append(out, coord.Range{From: min(prevEnd, start), To: max(prevEnd, start)})
		}
		donor = ex.Donor
		prevEnd = ex.Genomic.To
		if negative {
			prevEnd = ex.Genomic.From
		}
	}
	return out
}
