package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/entropy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/policy"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// AssessBatch evaluates every password against p (default when nil) with at
// most Threads in flight. Results keep input order. It stops early and
// returns the context error when ctx is cancelled.
func (e *Engine) AssessBatch(ctx context.Context, passwords []string, p *policy.Policy) ([]types.Assessment, error) {
	pol := e.cfg.Registry.Default()
	if p != nil {
		pol = *p
	}
	now := e.now()
	out := make([]types.Assessment, len(passwords))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Threads)
	for i := range passwords {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.assess(passwords[i], pol, now)
			if e.cfg.Progress != nil {
				e.cfg.Progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.cfg.Logger.Debug("batch assessed", "policy", pol.Name, "count", len(out))
	return out, nil
}

// Summary aggregates a batch of assessments.
type Summary struct {
	Total       int            `json:"total"`
	Verdicts    map[string]int `json:"verdicts"`
	ByStrength  [5]int         `json:"by_strength"`
	MeanEntropy float64        `json:"mean_entropy"`
}

// Summarize counts verdicts and strengths across as.
func Summarize(as []types.Assessment) Summary {
	s := Summary{
		Total: len(as),
		Verdicts: map[string]int{
			string(types.StatusPass): 0,
			string(types.StatusWarn): 0,
			string(types.StatusFail): 0,
		},
	}
	var sum float64
	for _, a := range as {
		s.Verdicts[string(a.Verdict())]++
		if a.Strength >= 0 && int(a.Strength) < len(s.ByStrength) {
			s.ByStrength[a.Strength]++
		}
		sum += a.EntropyBits
	}
	if len(as) > 0 {
		s.MeanEntropy = entropy.Round1(sum / float64(len(as)))
	}
	return s
}
