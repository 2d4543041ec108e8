package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/alnglyph/pkg/errors"
	alnio "github.com/matzehuels/alnglyph/pkg/io"
	"github.com/matzehuels/alnglyph/pkg/splice"
)

// spliceCommand creates the splice command for checking splice-site consensus.
func (c *CLI) spliceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "splice [donor acceptor | alignment.toml]",
		Short: "Check splice-site consensus",
		Long: `Check splice-site consensus.

With two arguments, classify one donor/acceptor dinucleotide pair. With one,
list the introns of an alignment description whose flanking sites are not
GT-AG, GC-AG or AT-AC.

Examples:
  alnglyph splice GT AG
  alnglyph splice tp53.toml`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeFiles("toml"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				return c.runSpliceSite(args[0], args[1])
			}
			return c.runSpliceFile(args[0])
		},
	}
}

func (c *CLI) runSpliceSite(donor, acceptor string) error {
	for _, s := range []string{donor, acceptor} {
		if err := errors.ValidateDinucleotide(s); err != nil {
			return err
		}
	}
	result := splice.Classify(donor, acceptor)
	printKeyValue(c.Out, "site", strings.ToUpper(donor)+"-"+strings.ToUpper(acceptor))
	if result == splice.Consensus {
		printSuccess(c.Out, "%s", result)
	} else {
		printError(c.Out, "%s", result)
	}
	return nil
}

func (c *CLI) runSpliceFile(path string) error {
	doc, err := alnio.ImportAlignment(path)
	if err != nil {
		return err
	}
	exons, negative := doc.Source.Exons()
	if len(exons) < 2 {
		printInfo(c.Out, "%s has no introns", doc.Source.ID())
		return nil
	}

	bad := splice.NonConsensusIntrons(exons, negative)
	introns := len(exons) - 1
	if len(bad) == 0 {
		printSuccess(c.Out, "All %d introns of %s are canonical", introns, doc.Source.ID())
		return nil
	}
	printWarning(c.Out, "%d of %d introns of %s are non-canonical", len(bad), introns, doc.Source.ID())
	for _, r := range bad {
		printDetail(c.Out, "%d-%d", r.From, r.To)
	}
	return nil
}
