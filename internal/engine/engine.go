package engine

import (
	"runtime"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/dictionary"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/entropy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/logging"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/patterns"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// maxSampleLen caps the masked sample.
const maxSampleLen = 50

// Config controls which catalog an Engine uses and how it fans out.
type Config struct {
	// Registry defaults to policy.Builtin().
	Registry *policy.Registry
	// Threads bounds parallel evaluation; <= 0 uses GOMAXPROCS.
	Threads int
	// Now stamps assessments; defaults to time.Now.
	Now func() time.Time
	// Logger receives debug summaries; defaults to a no-op logger.
	Logger *logging.Logger
	// Progress, when set, is called once per finished batch item.
	Progress func()
}

// Engine assesses passwords against the policies of one registry.
type Engine struct {
	cfg Config
}

// New returns an Engine with cfg's zero fields filled in.
func New(cfg Config) *Engine {
	if cfg.Registry == nil {
		cfg.Registry = policy.Builtin()
	}
	cfg.Threads = determineThreads(cfg.Threads)
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	return &Engine{cfg: cfg}
}

var std = New(Config{})

// Assess evaluates password against p using the built-in catalog. A nil p
// selects the default policy.
func Assess(password string, p *policy.Policy) types.Assessment {
	return std.Assess(password, p)
}

// AssessAll evaluates password against every built-in policy.
func AssessAll(password string) map[string]types.Assessment {
	return std.AssessAll(password)
}

func determineThreads(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > 32 {
		threads = 32
	}
	return threads
}

// Registry returns the catalog the engine evaluates against.
func (e *Engine) Registry() *policy.Registry { return e.cfg.Registry }

// Assess evaluates password against p, or the registry default when p is nil.
// It never fails: every string, including empty or invalid UTF-8, yields an
// Assessment.
func (e *Engine) Assess(password string, p *policy.Policy) types.Assessment {
	pol := e.cfg.Registry.Default()
	if p != nil {
		pol = *p
	}
	return e.assess(password, pol, e.now())
}

// AssessAll evaluates password against every policy in the registry. All
// results share one timestamp.
func (e *Engine) AssessAll(password string) map[string]types.Assessment {
	pols := e.cfg.Registry.All()
	now := e.now()
	results := make([]types.Assessment, len(pols))

	var g errgroup.Group
	g.SetLimit(e.cfg.Threads)
	for i := range pols {
		g.Go(func() error {
			results[i] = e.assess(password, pols[i], now)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]types.Assessment, len(pols))
	for i, p := range pols {
		out[p.Name] = results[i]
	}
	return out
}

func (e *Engine) now() time.Time {
	return e.cfg.Now().UTC().Truncate(time.Millisecond)
}

func (e *Engine) assess(password string, p policy.Policy, now time.Time) types.Assessment {
	classes := Classify(password)
	pats := patterns.Detect(password)
	hits := dictionary.Check(password)
	bitsEst := entropy.Estimate(password, classes, pats, hits)
	length := utf8.RuneCountInString(password)

	m := measured{password: password, length: length, classes: classes, entropy: bitsEst, hits: hits}
	a := types.Assessment{
		PasswordSample: Mask(password),
		Length:         length,
		Classes:        classes,
		EntropyBits:    bitsEst,
		Strength:       StrengthOf(bitsEst, length),
		Patterns:       pats,
		DictionaryHits: hits,
		Compliance:     evaluate(m, p),
		FixSuggestions: suggest(m, pats, p),
		PolicyName:     p.Name,
		Timestamp:      now,
	}
	e.cfg.Logger.Debug("assessed",
		"policy", p.Name,
		"length", length,
		"entropy", bitsEst,
		"strength", int(a.Strength),
		"verdict", string(a.Verdict()))
	return a
}

// Mask replaces each character with a bullet, capped at 50 bullets.
func Mask(password string) string {
	n := utf8.RuneCountInString(password)
	if n > maxSampleLen {
		n = maxSampleLen
	}
	return strings.Repeat("•", n)
}
