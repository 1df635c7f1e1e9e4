// Package matcher provides fuzzy person-name matching between the HR
// roster and the fleet export. The two systems are maintained by
// different departments, so names differ in ordering ("Huber Max" vs
// "Max Huber"), casing, and the occasional typo. Matching is
// token-sort based: tokens are normalized and sorted before an
// edit-distance similarity is computed, so word order never counts
// against a match.
package matcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the minimum score (0..100) accepted as a match.
// 95 keeps false positives out of the cost-center mapping; near-misses
// surface in the missing-in-HR report for manual review instead.
const DefaultThreshold = 95

// Normalize canonicalizes a name for comparison: trims, collapses
// inner whitespace, and lower-cases.
func Normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// tokenSort returns the normalized name with its tokens sorted.
func tokenSort(name string) string {
	tokens := strings.Fields(Normalize(name))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Score computes a 0..100 similarity between two raw names using
// token-sort ordering and Levenshtein distance. 100 means the
// normalized, token-sorted forms are identical.
func Score(a, b string) int {
	sa, sb := tokenSort(a), tokenSort(b)
	if sa == sb {
		if sa == "" {
			return 0
		}
		return 100
	}

	longest := len(sa)
	if len(sb) > longest {
		longest = len(sb)
	}
	if longest == 0 {
		return 0
	}

	dist := levenshtein.ComputeDistance(sa, sb)
	return (longest - dist) * 100 / longest
}

// Match is the outcome of looking up one name against the candidates.
type Match struct {
	Name  string // candidate as originally supplied
	Score int
}

// Matcher matches names against a fixed candidate list.
type Matcher struct {
	threshold int
	// normalized token-sorted form -> original candidate
	exact      map[string]string
	candidates []string

	mu    sync.Mutex
	cache map[string]Match
}

// New creates a Matcher over the candidate names. A threshold of 0
// uses DefaultThreshold.
func New(candidates []string, threshold int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	m := &Matcher{
		threshold: threshold,
		exact:     make(map[string]string, len(candidates)),
		cache:     make(map[string]Match),
	}
	for _, c := range candidates {
		key := tokenSort(c)
		if key == "" {
			continue
		}
		if _, ok := m.exact[key]; !ok {
			m.exact[key] = c
		}
		m.candidates = append(m.candidates, c)
	}
	return m
}

// Threshold returns the minimum accepted score.
func (m *Matcher) Threshold() int {
	return m.threshold
}

// Best returns the best-scoring candidate for name. ok is false when
// the name is empty or no candidate reaches the threshold; the
// best score found is still returned for reporting.
func (m *Matcher) Best(name string) (match string, score int, ok bool) {
	key := tokenSort(name)
	if key == "" {
		return "", 0, false
	}

	// Exact token-sorted hits skip the scan entirely.
	if c, found := m.exact[key]; found {
		return c, 100, true
	}

	m.mu.Lock()
	cached, hit := m.cache[key]
	m.mu.Unlock()
	if hit {
		return cached.Name, cached.Score, cached.Score >= m.threshold && cached.Name != ""
	}

	best := Match{}
	for _, c := range m.candidates {
		s := Score(name, c)
		if s > best.Score {
			best = Match{Name: c, Score: s}
		}
	}

	m.mu.Lock()
	m.cache[key] = best
	m.mu.Unlock()

	if best.Score >= m.threshold {
		return best.Name, best.Score, true
	}
	return "", best.Score, false
}
