package langdet

// candidate tracks one language's accumulated score within a single
// detection call. grams caches the profile's map for the phase currently
// being scored.
type candidate struct {
	profile *LanguageProfile
	grams   map[gramKey]uint32
	score   uint64
}

// candidateSet is the per-call working set: a code-keyed index plus the
// insertion-ordered slice used for iteration and tie-breaking. Candidates
// enter in the detector's profile order and never leave.
type candidateSet struct {
	byCode  map[string]*candidate
	ordered []*candidate
}

func newCandidateSet(capacity int) *candidateSet {
	return &candidateSet{
		byCode:  make(map[string]*candidate, capacity),
		ordered: make([]*candidate, 0, capacity),
	}
}

// beginPhase re-caches every candidate's frequency map for the next gram
// order.
func (cs *candidateSet) beginPhase(order GramOrder) {
	for _, c := range cs.ordered {
		c.grams = c.profile.gramsFor(order)
	}
}

// winner returns the highest-scoring language. Equal scores resolve to the
// candidate inserted first, which follows the detector's profile order. A
// set whose best score is zero has no winner.
func (cs *candidateSet) winner() (string, bool) {
	var best *candidate
	for _, c := range cs.ordered {
		if best == nil || c.score > best.score {
			best = c
		}
	}
	if best == nil || best.score == 0 {
		return "", false
	}
	return best.profile.name, true
}

// scoreTokens runs the given scoring phases over the chosen tokens. A nil
// picks slice scores every token; otherwise only the sampled indices are
// scored, in order.
func (d *Detector) scoreTokens(cs *candidateSet, tokens [][]rune, picks []int, orders []GramOrder) {
	for _, order := range orders {
		cs.beginPhase(order)
		w := order.width()
		scan := func(k gramKey) {
			d.scoreWindow(cs, order, k)
		}

		if picks == nil {
			for _, tok := range tokens {
				walkWindows(tok, w, scan)
			}
			continue
		}
		for _, i := range picks {
			walkWindows(tokens[i], w, scan)
		}
	}
}

// scoreWindow applies one extracted window to the candidate set. The very
// first window of a call takes the full scan; afterwards the cheap update
// over current candidates runs first and falls back to a full scan when it
// finds no signal at all, so languages not yet represented get a chance to
// enter the set.
func (d *Detector) scoreWindow(cs *candidateSet, order GramOrder, k gramKey) {
	if len(cs.ordered) == 0 {
		d.fullScan(cs, order, k)
		return
	}

	var total uint64
	for _, c := range cs.ordered {
		n := uint64(c.grams[k])
		c.score += n
		total += n
	}
	if total == 0 {
		d.fullScan(cs, order, k)
	}
}

// fullScan looks the window up in every known profile and enters each
// language into the candidate set with whatever count it carries, zero
// included. When fullScan runs as the zero-signal fallback, the counts the
// update pass already added were all zero, so no window is counted twice.
func (d *Detector) fullScan(cs *candidateSet, order GramOrder, k gramKey) {
	for _, p := range d.profiles {
		c := cs.byCode[p.name]
		if c == nil {
			c = &candidate{profile: p, grams: p.gramsFor(order)}
			cs.byCode[p.name] = c
			cs.ordered = append(cs.ordered, c)
		}
		c.score += uint64(c.grams[k])
	}
}
