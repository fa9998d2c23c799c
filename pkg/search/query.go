package search

import (
	"sort"
	"strings"
)

// Result is one ranked query hit. Title and Snippet carry the original text
// with every match wrapped in the index's highlight markers.
type Result struct {
	NoteID        string
	Score         int
	Title         string
	Snippet       string
	MatchedLabels []string
}

// snippetContext is how many bytes of surrounding text a content snippet
// keeps on each side of the first match.
const snippetContext = 40

// Search runs a case-insensitive substring query and returns hits ranked by
// score, highest first. Ties rank by title, then note id, so results are
// deterministic. An empty or whitespace-only query matches nothing.
func (ix *Index) Search(query string) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var out []Result
	for id, e := range ix.entries {
		score := 0
		res := Result{NoteID: id, Title: e.title}

		if containsFold(e.title, q) {
			score += scoreTitle
			res.Title = ix.emphasize(e.title, q)
		}
		if containsFold(e.content, q) {
			score += scoreContent
			res.Snippet = ix.snippet(e.content, q)
		}
		for _, label := range e.labels {
			if containsFold(label, q) {
				score += scoreLabel
				res.MatchedLabels = append(res.MatchedLabels, label)
			}
		}

		if score == 0 {
			continue
		}
		res.Score = score
		out = append(out, res)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].NoteID < out[j].NoteID
	})
	return out
}

func containsFold(s, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(s), loweredQuery)
}

// emphasize wraps every case-insensitive occurrence of the query in the
// highlight markers, preserving the original casing of the text.
func (ix *Index) emphasize(s, loweredQuery string) string {
	var b strings.Builder
	lower := strings.ToLower(s)

	for {
		i := strings.Index(lower, loweredQuery)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := i + len(loweredQuery)
		b.WriteString(s[:i])
		b.WriteString(ix.startMark)
		b.WriteString(s[i:end])
		b.WriteString(ix.endMark)
		s, lower = s[end:], lower[end:]
	}
}

// snippet extracts a highlighted window around the first content match,
// with ellipses where text was cut.
func (ix *Index) snippet(content, loweredQuery string) string {
	lower := strings.ToLower(content)
	i := strings.Index(lower, loweredQuery)
	if i < 0 {
		return ""
	}

	start := i - snippetContext
	if start < 0 {
		start = 0
	}
	end := i + len(loweredQuery) + snippetContext
	if end > len(content) {
		end = len(content)
	}

	// Keep the window on rune boundaries.
	for start > 0 && !utf8Start(content[start]) {
		start--
	}
	for end < len(content) && !utf8Start(content[end]) {
		end++
	}

	window := ix.emphasize(content[start:end], loweredQuery)
	if start > 0 {
		window = "…" + window
	}
	if end < len(content) {
		window += "…"
	}
	return window
}

// utf8Start reports whether b can begin a UTF-8 encoded rune.
func utf8Start(b byte) bool { return b&0xC0 != 0x80 }
