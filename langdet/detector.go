// Package langdet guesses the natural language of tokenized text by
// scoring character n-gram frequencies against per-language profiles.
package langdet

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

// Defaults applied by New for zero Config fields.
const (
	DefaultShortWords     = 20
	DefaultShortTextLimit = 200
	DefaultSampleWords    = 20
)

// Inputs whose word count exceeds sampleFactor times the sample target are
// sub-sampled to bound scoring cost.
const sampleFactor = 2

var (
	allOrders   = []GramOrder{Unigram, Bigram, Trigram}
	shortOrders = []GramOrder{Trigram}
)

// Config carries the detector tunables consumed at construction. Zero
// fields select the package defaults.
type Config struct {
	// ShortWords is the word count below which detection skips the
	// unigram and bigram phases and scores trigrams only.
	ShortWords int `yaml:"short_words"`

	// ShortTextLimit is the total character count below which the same
	// trigram-only path is taken.
	ShortTextLimit int `yaml:"short_text_limit"`

	// SampleWords is the number of tokens actually scored when a long
	// input is sub-sampled.
	SampleWords int `yaml:"sample_words"`

	// Rand supplies randomness for sub-sampling. Nil selects the shared
	// process-wide generator; tests inject a seeded source.
	Rand Source `yaml:"-"`
}

// withDefaults fills zero fields and rejects invalid ones.
func (c Config) withDefaults() (Config, error) {
	if c.ShortWords == 0 {
		c.ShortWords = DefaultShortWords
	}
	if c.ShortTextLimit == 0 {
		c.ShortTextLimit = DefaultShortTextLimit
	}
	if c.SampleWords == 0 {
		c.SampleWords = DefaultSampleWords
	}
	if c.Rand == nil {
		c.Rand = globalSource{}
	}

	if c.ShortWords < 0 {
		return c, fmt.Errorf("short words threshold must not be negative, got %d", c.ShortWords)
	}
	if c.ShortTextLimit < 0 {
		return c, fmt.Errorf("short text limit must not be negative, got %d", c.ShortTextLimit)
	}
	if c.SampleWords < 0 {
		return c, fmt.Errorf("sample words must not be negative, got %d", c.SampleWords)
	}
	return c, nil
}

// Detector scores tokenized text against a fixed set of language profiles.
// It never mutates after construction and is safe for concurrent use; the
// random source is the one piece of shared state and must itself be
// concurrency safe.
type Detector struct {
	profiles       []*LanguageProfile
	shortWords     int
	shortTextLimit int
	sampleWords    int
	rng            Source
	logger         *logrus.Entry
}

// New builds a detector over the given profiles. Profile order is
// preserved for the detector's lifetime and decides score ties, first in
// wins.
func New(conf Config, profiles []*LanguageProfile) (d *Detector, err error) {
	conf, err = conf.withDefaults()
	if err != nil {
		return
	}

	if len(profiles) == 0 {
		err = fmt.Errorf("at least one language profile is required")
		return
	}
	seen := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		if seen[p.name] {
			err = fmt.Errorf("duplicate language profile: %s", p.name)
			return
		}
		seen[p.name] = true
	}

	d = &Detector{
		profiles:       slices.Clone(profiles),
		shortWords:     conf.ShortWords,
		shortTextLimit: conf.ShortTextLimit,
		sampleWords:    conf.SampleWords,
		rng:            conf.Rand,
		logger:         logrus.WithField("component", "language_detector"),
	}
	d.logger.Debugf("detector ready: %d languages, short words %d, short text limit %d, sample words %d",
		len(d.profiles), d.shortWords, d.shortTextLimit, d.sampleWords)
	return
}

// Detect guesses the language of a tokenized document and returns its
// short code. wordCount is the document's overall word count, which may
// exceed len(tokens) when the caller filtered the token list. The second
// return is false when no language can be determined: an empty input, or
// an input whose grams match no known language.
func (d *Detector) Detect(tokens [][]rune, wordCount int) (string, bool) {
	if len(tokens) == 0 {
		return "", false
	}

	orders := allOrders
	if d.isShort(tokens, wordCount) {
		orders = shortOrders
	}

	var picks []int
	if d.ShouldSample(len(tokens), wordCount) {
		var err error
		picks, err = sampleIndices(d.rng, len(tokens), d.sampleWords)
		if err != nil {
			// Unreachable: ShouldSample guarantees the sampler contract.
			panic(err)
		}
		d.logger.Tracef("scoring %d of %d tokens", len(picks), len(tokens))
	}

	cs := newCandidateSet(len(d.profiles))
	d.scoreTokens(cs, tokens, picks, orders)

	lang, ok := cs.winner()
	d.logger.Tracef("detected language %q over %d words (determined: %t)", lang, wordCount, ok)
	return lang, ok
}

// DetectText tokenizes text and detects its language.
func (d *Detector) DetectText(text string) (string, bool) {
	tokens, words := Tokenize(text)
	return d.Detect(tokens, words)
}

// Languages lists the profile codes in the order they were registered.
func (d *Detector) Languages() []string {
	out := make([]string, len(d.profiles))
	for i, p := range d.profiles {
		out[i] = p.name
	}
	return out
}

// ShouldSample reports whether a Detect call with the given token and word
// counts sub-samples its input instead of scoring every token.
func (d *Detector) ShouldSample(tokenCount, wordCount int) bool {
	return wordCount > sampleFactor*d.sampleWords && tokenCount >= d.sampleWords
}

// isShort reports whether the input carries too little text for unigram
// and bigram signal to be discriminating.
func (d *Detector) isShort(tokens [][]rune, wordCount int) bool {
	if wordCount < d.shortWords {
		return true
	}
	chars := 0
	for _, tok := range tokens {
		chars += len(tok)
	}
	return chars < d.shortTextLimit
}
