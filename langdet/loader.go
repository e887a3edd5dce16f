package langdet

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
)

// profileFile is the on-disk shape produced by the offline corpus build.
type profileFile struct {
	Freq map[string]uint32 `json:"freq"`
}

// LoadProfiles reads every *.json frequency table in fsys, in lexical file
// order. The language code is the file name without its extension. A file
// that cannot be read, parsed or turned into a usable profile is skipped
// with a warning so one bad table does not disable detection; a filesystem
// yielding no profile at all is an error.
func LoadProfiles(fsys fs.FS) (profiles []*LanguageProfile, err error) {
	logger := logrus.WithField("component", "profile_loader")

	var names []string
	names, err = fs.Glob(fsys, "*.json")
	if err != nil {
		err = fmt.Errorf("listing profiles: %w", err)
		return
	}

	for _, name := range names {
		p, perr := loadProfile(fsys, name)
		if perr != nil {
			logger.Warnf("skipping %s: %v", name, perr)
			continue
		}
		logger.Debugf("loaded %s: %d unigrams, %d bigrams, %d trigrams",
			p.name, p.gramCount(Unigram), p.gramCount(Bigram), p.gramCount(Trigram))
		profiles = append(profiles, p)
	}

	if len(profiles) == 0 {
		err = fmt.Errorf("no language profiles loaded")
		return
	}

	logger.Infof("loaded %d language profiles", len(profiles))
	return profiles, nil
}

func loadProfile(fsys fs.FS, name string) (*LanguageProfile, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}

	var pf profileFile
	if err = json.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("parsing frequency table: %w", err)
	}

	code := strings.TrimSuffix(path.Base(name), ".json")
	return NewProfile(code, pf.Freq)
}
