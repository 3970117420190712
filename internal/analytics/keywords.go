package analytics

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

type KeywordParams struct {
	Limit     int
	MinLength int
}

type Keyword struct {
	Word       string  `json:"word"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type KeywordReport struct {
	TotalWords  int       `json:"total_words"`
	UniqueWords int       `json:"unique_words"`
	Keywords    []Keyword `json:"keywords"`
}

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "this": {}, "that": {},
	"from": {}, "was": {}, "are": {}, "been": {}, "have": {}, "has": {},
	"had": {}, "but": {}, "not": {},
}

// nonWord matches everything that is not a letter, digit, underscore,
// whitespace or a hashtag marker, in any script.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s#]`)

// KeywordFrequency extracts the most frequent qualifying words from
// all stored titles.
func (s *Service) KeywordFrequency(ctx context.Context, params KeywordParams) (*KeywordReport, error) {
	titles, err := s.q.GetAllTitles(ctx)
	if err != nil {
		return nil, err
	}
	report := ExtractKeywords(titles, params.Limit, params.MinLength)
	return report, nil
}

// ExtractKeywords lowercases titles, strips markup and punctuation
// (keeping hashtag words without their marker), drops words shorter
// than minLength or in the stopword set, and counts the rest.
// Percentages are over the filtered total, rounded to 2 decimals.
func ExtractKeywords(titles []string, limit, minLength int) *KeywordReport {
	if limit <= 0 {
		limit = 20
	}
	if minLength <= 0 {
		minLength = 3
	}

	counts := make(map[string]int)
	total := 0

	for _, title := range titles {
		cleaned := nonWord.ReplaceAllString(strings.ToLower(stripMarkup(title)), " ")
		for _, word := range strings.Fields(cleaned) {
			word = strings.TrimLeft(word, "#")
			if utf8.RuneCountInString(word) < minLength {
				continue
			}
			if _, stop := stopwords[word]; stop {
				continue
			}
			counts[word]++
			total++
		}
	}

	type wordCount struct {
		word  string
		count int
	}
	ranked := make([]wordCount, 0, len(counts))
	for word, count := range counts {
		ranked = append(ranked, wordCount{word, count})
	}
	// Most frequent first, alphabetical among equals so output is
	// stable.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	report := &KeywordReport{
		TotalWords:  total,
		UniqueWords: len(counts),
		Keywords:    make([]Keyword, 0, len(ranked)),
	}
	for _, wc := range ranked {
		percentage := 0.0
		if total > 0 {
			percentage = round(float64(wc.count)/float64(total)*100, 2)
		}
		report.Keywords = append(report.Keywords, Keyword{
			Word:       wc.word,
			Count:      wc.count,
			Percentage: percentage,
		})
	}
	return report
}

// stripMarkup flattens any markup that survived the export into plain
// text before tokenizing.
func stripMarkup(input string) string {
	if !strings.ContainsAny(input, "<&") {
		return input
	}
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return input
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteString(" ")
				}
				b.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}
