package langdet

import "fmt"

// maxGramLen is the widest n-gram order the frequency model carries.
const maxGramLen = 3

// GramOrder selects one of the three n-gram frequency maps of a
// LanguageProfile.
type GramOrder int

const (
	Unigram GramOrder = iota
	Bigram
	Trigram
)

func (o GramOrder) String() string {
	switch o {
	case Unigram:
		return "unigram"
	case Bigram:
		return "bigram"
	case Trigram:
		return "trigram"
	}
	return fmt.Sprintf("GramOrder(%d)", int(o))
}

// width is the window size in characters for this order.
func (o GramOrder) width() int {
	return int(o) + 1
}

// gramKey packs up to three characters of an n-gram into a comparable
// value. Unused trailing slots stay zero, so keys of different orders
// never collide within one map.
type gramKey [maxGramLen]rune

func (k gramKey) String() string {
	out := make([]rune, 0, maxGramLen)
	for _, r := range k {
		if r == 0 {
			break
		}
		out = append(out, r)
	}
	return string(out)
}

// walkWindows calls fn for every window of width w over tok, left to
// right. For w > 1 the token is bracketed by a single virtual space on
// each side, so the first window carries start-of-word context and the
// last carries end-of-word context; for very short tokens the two may
// collapse into one window. Single-character windows cover exactly the
// real characters, unpadded.
func walkWindows(tok []rune, w int, fn func(gramKey)) {
	if w == 1 {
		for _, r := range tok {
			fn(gramKey{r})
		}
		return
	}

	// The bracketed length is len(tok)+2; emit every window that fits.
	for off := 0; off+w <= len(tok)+2; off++ {
		var k gramKey
		for j := 0; j < w; j++ {
			k[j] = bracketed(tok, off+j)
		}
		fn(k)
	}
}

// bracketed indexes the token as if a space sat at each end.
func bracketed(tok []rune, i int) rune {
	if i == 0 || i == len(tok)+1 {
		return ' '
	}
	return tok[i-1]
}
