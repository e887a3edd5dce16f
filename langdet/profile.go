package langdet

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LanguageProfile holds the character n-gram statistics of one language:
// one frequency map per gram order plus per-order totals accumulated at
// build time. A profile is immutable once constructed.
type LanguageProfile struct {
	name   string
	grams  [maxGramLen]map[gramKey]uint32
	totals [maxGramLen]uint64
}

// NewProfile builds a profile from a flat frequency table as produced by
// the offline corpus build. Keys are classified by character length into
// the unigram, bigram or trigram map; empty keys and keys longer than
// three characters are skipped with a warning. The code must be non-empty
// and at least one usable gram must remain.
func NewProfile(code string, freq map[string]uint32) (p *LanguageProfile, err error) {
	if code == "" {
		err = fmt.Errorf("language code is required")
		return
	}

	lp := &LanguageProfile{name: code}
	for i := range lp.grams {
		lp.grams[i] = make(map[gramKey]uint32)
	}

	for s, n := range freq {
		rs := []rune(s)
		if len(rs) == 0 || len(rs) > maxGramLen {
			logrus.Warnf("profile %s: skipping gram %q of length %d", code, s, len(rs))
			continue
		}

		order := GramOrder(len(rs) - 1)
		var k gramKey
		copy(k[:], rs)
		lp.grams[order][k] += n
		lp.totals[order] += uint64(n)
	}

	if lp.totals[Unigram]+lp.totals[Bigram]+lp.totals[Trigram] == 0 {
		err = fmt.Errorf("profile %s: frequency table has no usable grams", code)
		return
	}
	return lp, nil
}

// Name returns the short language code the profile was built for.
func (p *LanguageProfile) Name() string {
	return p.name
}

// gramsFor returns the frequency map of one gram order. The scorer selects
// the map once per phase instead of re-picking it per window.
func (p *LanguageProfile) gramsFor(order GramOrder) map[gramKey]uint32 {
	return p.grams[order]
}

// gramCount reports how many distinct grams the profile holds for an order.
func (p *LanguageProfile) gramCount(order GramOrder) int {
	return len(p.grams[order])
}
