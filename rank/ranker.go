// Package rank scores link candidates and text fragments against a query by
// cosine similarity of their embeddings.
package rank

import (
	"context"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/fwojciec/docask"
)

// Ranking defaults.
const (
	DefaultK        = 5
	DefaultMinChars = 20
)

var _ docask.Ranker = (*Ranker)(nil)

// Ranker ranks link candidates and fragments against a query.
type Ranker struct {
	Embedder docask.Embedder

	// K is the maximum number of fragments returned by TopFragments.
	K int

	// Threshold discards candidates scoring below it. Zero disables.
	Threshold float64

	// MinChars drops top fragments with this many characters or fewer.
	// A page with a single fragment is exempt.
	MinChars int
}

// NewRanker returns a Ranker with DefaultK and DefaultMinChars.
func NewRanker(embedder docask.Embedder) *Ranker {
	return &Ranker{
		Embedder: embedder,
		K:        DefaultK,
		MinChars: DefaultMinChars,
	}
}

// BestLink returns the candidate whose text is most similar to query.
// Ties keep the first candidate. ok is false when links is empty or no
// candidate reaches the threshold.
func (r *Ranker) BestLink(ctx context.Context, query string, links []docask.LinkCandidate) (best docask.LinkCandidate, score float64, ok bool, err error) {
	if len(links) == 0 {
		return docask.LinkCandidate{}, 0, false, nil
	}

	texts := make([]string, len(links))
	for i, l := range links {
		texts[i] = l.Text
	}
	scores, err := r.score(ctx, query, texts)
	if err != nil {
		return docask.LinkCandidate{}, 0, false, err
	}

	bestScore := -1.0
	bestIdx := -1
	for i, s := range scores {
		if r.Threshold > 0 && s < r.Threshold {
			continue
		}
		if s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return docask.LinkCandidate{}, 0, false, nil
	}
	return links[bestIdx], bestScore, true, nil
}

// TopFragments returns at most K fragments most similar to query, best
// first. Equal scores keep document order. After the cut, fragments not
// longer than MinChars are dropped and repeated texts are removed.
func (r *Ranker) TopFragments(ctx context.Context, query string, fragments []docask.Fragment) ([]docask.ScoredFragment, error) {
	if len(fragments) == 0 {
		return []docask.ScoredFragment{}, nil
	}

	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}
	scores, err := r.score(ctx, query, texts)
	if err != nil {
		return nil, err
	}

	scored := make([]docask.ScoredFragment, 0, len(fragments))
	for i, f := range fragments {
		if r.Threshold > 0 && scores[i] < r.Threshold {
			continue
		}
		scored = append(scored, docask.ScoredFragment{Fragment: f, Score: scores[i]})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	k := r.K
	if k <= 0 {
		k = DefaultK
	}
	if k > len(scored) {
		k = len(scored)
	}
	top := scored[:k]

	exempt := len(fragments) == 1
	seen := make(map[string]bool, len(top))
	out := make([]docask.ScoredFragment, 0, len(top))
	for _, f := range top {
		if !exempt && utf8.RuneCountInString(f.Text) <= r.MinChars {
			continue
		}
		key := docask.Normalize(f.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out, nil
}

// score embeds query together with texts in one call and returns the cosine
// similarity of each text to the query.
func (r *Ranker) score(ctx context.Context, query string, texts []string) ([]float64, error) {
	vecs, err := r.Embedder.Embed(ctx, append([]string{query}, texts...))
	if err != nil {
		return nil, fmt.Errorf("embedding: %w", err)
	}
	if len(vecs) != len(texts)+1 {
		return nil, docask.Errorf(docask.EINTERNAL, "embedder returned %d vectors for %d texts", len(vecs), len(texts)+1)
	}

	scores := make([]float64, len(texts))
	for i := range texts {
		scores[i] = CosineSimilarity(vecs[0], vecs[i+1])
	}
	return scores, nil
}

// CosineSimilarity returns the cosine of the angle between a and b,
// accumulated in float64. Empty, zero or mismatched vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
