package links

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/paths"
)

// Pair is a resolved link: Link should be a symlink to Original
type Pair struct {
	// Name is the configured source, used for selection and display
	Name     string `json:"name"`
	Original string `json:"original"`
	Link     string `json:"link"`
}

// Resolve maps each configured link onto absolute paths. Two entries that
// expand to the same link path are rejected.
func Resolve(cfg *config.Config, p paths.Paths) ([]Pair, error) {
	pairs := make([]Pair, 0, len(cfg.Links))
	seen := make(map[string]string, len(cfg.Links))

	for _, spec := range cfg.Links {
		link, err := p.ExpandTarget(spec.Target)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid target for %s", spec.Source).
				WithDetail("target", spec.Target)
		}
		if other, ok := seen[link]; ok {
			return nil, errors.Newf(errors.ErrConfigValid, "%s and %s both link to %s", other, spec.Source, link).
				WithDetail("link", link)
		}
		seen[link] = spec.Source

		pairs = append(pairs, Pair{
			Name:     spec.Source,
			Original: p.SourcePath(spec.Source),
			Link:     link,
		})
	}
	return pairs, nil
}

// Matches reports whether name selects this pair. A name matches the
// configured source, the source basename or the link basename.
func (p Pair) Matches(name string) bool {
	name = strings.TrimSuffix(name, "/")
	return name == p.Name ||
		name == filepath.Base(p.Original) ||
		name == filepath.Base(p.Link)
}

// Select returns the pairs matched by names, in configuration order. No
// names selects everything; a name matching nothing is an error.
func Select(pairs []Pair, names []string) ([]Pair, error) {
	if len(names) == 0 {
		return pairs, nil
	}

	var selected []Pair
	for _, name := range names {
		found := false
		for _, p := range pairs {
			if p.Matches(name) {
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Newf(errors.ErrNotFound, "no configured link matches %q", name).
				WithDetail("name", name)
		}
	}
	for _, p := range pairs {
		for _, name := range names {
			if p.Matches(name) {
				selected = append(selected, p)
				break
			}
		}
	}
	return selected, nil
}
