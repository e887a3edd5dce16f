package langdet

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genToken generates random lowercase tokens, empty ones included.
func genToken() gopter.Gen {
	return gen.SliceOf(gen.AlphaLowerChar())
}

func TestWalkWindowsWindowCount(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("bracketed walk emits every fitting window exactly once", prop.ForAll(
		func(tok []rune, w int) bool {
			count := 0
			walkWindows(tok, w, func(gramKey) { count++ })

			want := len(tok) + 3 - w
			if want < 0 {
				want = 0
			}
			return count == want
		},
		genToken(),
		gen.IntRange(2, 3),
	))

	properties.Property("unigram walk emits one window per character", prop.ForAll(
		func(tok []rune) bool {
			var got []gramKey
			walkWindows(tok, 1, func(k gramKey) { got = append(got, k) })
			if len(got) != len(tok) {
				return false
			}
			for i, k := range got {
				if k != (gramKey{tok[i]}) {
					return false
				}
			}
			return true
		},
		genToken(),
	))

	properties.TestingRun(t)
}

func TestWalkWindowsBoundaries(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("only the first and last windows carry the virtual spaces", prop.ForAll(
		func(tok []rune, w int) bool {
			var got []gramKey
			walkWindows(tok, w, func(k gramKey) { got = append(got, k) })
			if len(got) == 0 {
				return true
			}

			first, last := got[0], got[len(got)-1]
			if first[0] != ' ' || last[w-1] != ' ' {
				return false
			}
			if len(got) < 2 {
				return true
			}
			for _, k := range got[1 : len(got)-1] {
				for j := 0; j < w; j++ {
					if k[j] == ' ' {
						return false
					}
				}
			}
			return true
		},
		genToken(),
		gen.IntRange(2, 3),
	))

	properties.TestingRun(t)
}
