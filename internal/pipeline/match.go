package pipeline

import (
	"math"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"sheetnorm/internal/schema"
	"sheetnorm/internal/util"
)

// matchTier orders candidates that land on the same score: an exact hit on
// the canonical name outranks an exact synonym, which outranks whole-string
// similarity, which outranks a partial alignment.
type matchTier int

const (
	tierNone matchTier = iota
	tierPartial
	tierRatio
	tierExactSynonym
	tierExactName
)

type entryScore struct {
	Score int
	Tier  matchTier
}

func (s entryScore) beats(other entryScore) bool {
	if s.Score != other.Score {
		return s.Score > other.Score
	}
	return s.Tier > other.Tier
}

// Matcher scores a raw header against canonical entries. It is stateless
// apart from the threshold that gates partial-alignment scores.
type Matcher struct {
	threshold int
}

func NewMatcher(threshold int) *Matcher {
	return &Matcher{threshold: threshold}
}

// Score returns the 0-100 similarity between one header and one entry: the
// maximum over the canonical name and every synonym.
func (m *Matcher) Score(header string, entry schema.Entry) int {
	return m.score(header, entry).Score
}

func (m *Matcher) score(header string, entry schema.Entry) entryScore {
	clean := util.CleanHeader(header)
	if clean == "" {
		return entryScore{}
	}
	folded := util.FoldHeader(clean)

	if folded == util.FoldHeader(entry.Name) {
		return entryScore{Score: 100, Tier: tierExactName}
	}

	best := entryScore{Score: ratio(clean, strings.ToLower(entry.Name)), Tier: tierRatio}
	consider := func(s entryScore) {
		if s.beats(best) {
			best = s
		}
	}

	for _, syn := range entry.Synonyms {
		lower := strings.ToLower(syn)
		if folded == util.FoldHeader(lower) {
			consider(entryScore{Score: 100, Tier: tierExactSynonym})
			continue
		}
		consider(entryScore{Score: ratio(clean, lower), Tier: tierRatio})

		// Partial alignments need a higher bar so short incidental
		// substrings cannot claim a column.
		if p := partialRatio(clean, lower); p >= m.threshold+10 {
			consider(entryScore{Score: p, Tier: tierPartial})
		}
	}

	return best
}

var ratioOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 2,
	Matches: levenshtein.IdenticalRunes,
}

// ratio is symmetric edit-distance similarity scaled to 0-100. Substitutions
// cost 2 so the value matches the classic (lensum-dist)/lensum ratio.
func ratio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	r := levenshtein.RatioForStrings([]rune(a), []rune(b), ratioOptions)
	return int(math.Round(r * 100))
}

// partialRatio slides the shorter string over every same-length window of the
// longer one and keeps the best whole-string ratio.
func partialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	short, long := ra, rb
	if len(short) > len(long) {
		short, long = long, short
	}

	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		window := long[i : i+len(short)]
		r := int(math.Round(levenshtein.RatioForStrings(short, window, ratioOptions) * 100))
		if r > best {
			best = r
		}
	}
	return best
}
