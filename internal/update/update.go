// Package update checks GitHub releases for newer pwlab builds and replaces
// the running binary.
package update

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/config"
)

const (
	// Slug is the GitHub repository releases are published to.
	Slug          = "Razmik-Kutinava/password-entropy-lab"
	cacheFileName = "update.json"
	cacheTTL      = 24 * time.Hour
)

// Result describes the latest published release relative to the running
// version.
type Result struct {
	Current string
	Latest  string
	URL     string
	Newer   bool
}

type cache struct {
	LastChecked time.Time `json:"last_checked"`
	Latest      string    `json:"latest"`
	URL         string    `json:"url,omitempty"`
}

// release is the subset of a GitHub release the package needs.
type release struct {
	version string
	url     string
}

// detectLatest and updateSelf are swapped out in tests.
var (
	detectLatest = func(slug string) (release, bool, error) {
		rel, found, err := selfupdate.DetectLatest(slug)
		if err != nil || !found {
			return release{}, found, err
		}
		return release{version: rel.Version.String(), url: rel.URL}, true, nil
	}
	updateSelf = func(current semver3.Version, slug string) (string, error) {
		rel, err := selfupdate.UpdateSelf(current, slug)
		if err != nil {
			return "", err
		}
		return rel.Version.String(), nil
	}
	now = time.Now
)

func cachePath() string {
	return filepath.Join(config.DataDir(), cacheFileName)
}

func loadCache() (cache, error) {
	var c cache
	b, err := os.ReadFile(cachePath())
	if err != nil {
		return c, err
	}
	err = json.Unmarshal(b, &c)
	return c, err
}

func saveCache(c cache) error {
	path := cachePath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0600)
}

// Check compares current against the latest release. The lookup is cached
// for a day in the data directory and skipped entirely in CI or when
// noNetwork is set. A failed lookup with a usable cache is not an error.
func Check(current string, noNetwork bool) (Result, error) {
	res := Result{Current: normalize(current)}
	if os.Getenv("CI") != "" || noNetwork {
		return res, nil
	}

	c, _ := loadCache()
	var lookupErr error
	if c.Latest == "" || now().Sub(c.LastChecked) > cacheTTL {
		rel, found, err := detectLatest(Slug)
		switch {
		case err != nil:
			lookupErr = err
		case found:
			c = cache{LastChecked: now().UTC(), Latest: normalize(rel.version), URL: rel.url}
			_ = saveCache(c)
		}
	}
	if c.Latest == "" {
		return res, lookupErr
	}

	res.Latest = c.Latest
	res.URL = c.URL
	res.Newer = newer(c.Latest, res.Current)
	return res, nil
}

// Apply replaces the running executable with the latest release and returns
// the version now installed, which equals current when nothing newer exists.
func Apply(current string) (string, error) {
	v := parse(current)
	installed, err := updateSelf(semver3.MustParse(v.String()), Slug)
	if err != nil {
		return "", err
	}
	if installed == "" {
		return "", errors.New("update: no release found")
	}
	return normalize(installed), nil
}

func normalize(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// parse reads v tolerantly; unparsable versions such as "dev" are 0.0.0 so
// any release counts as newer.
func parse(v string) semver.Version {
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		return semver.MustParse("0.0.0")
	}
	return ver
}

func newer(latest, current string) bool {
	l, err := semver.ParseTolerant(latest)
	if err != nil {
		return false
	}
	return l.GT(parse(current))
}
