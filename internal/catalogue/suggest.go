package catalogue

import "github.com/lithammer/fuzzysearch/fuzzy"

// Suggest returns the catalogue's closest known operator name to got, by
// fuzzy rank, or "" if got is too far from every candidate to be a useful
// suggestion (SPEC_FULL.md §4.9). It never affects whether a parse
// succeeds — only what a failure's error message offers as a "did you
// mean" hint.
func (c *Catalogue) Suggest(got string) string {
	return SuggestAmong(got, c.names)
}

// SuggestAmong ranks candidates by fuzzy closeness to got and returns the
// best match, or "" if candidates is empty or nothing ranks as close.
// Exposed standalone so callers can also suggest against a caller-supplied
// set (e.g. variable names already bound in the caller's scope).
func SuggestAmong(got string, candidates []string) string {
	if got == "" || len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(got, candidates)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}
