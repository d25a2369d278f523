package email

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// BM25 parameters. Standard values; the corpus is small enough that tuning
// them buys nothing.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// tokenize lowercases and splits on non-alphanumeric runes.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// uniqueTerms drops repeated terms, keeping first-seen order. A repeated
// query term must not count a document's frequency twice or double its
// weight in the score.
func uniqueTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := terms[:0]
	for _, term := range terms {
		if seen[term] {
			continue
		}
		seen[term] = true
		out = append(out, term)
	}
	return out
}

// rankBM25 scores each email's Document text against the query and returns
// the top k matches in descending score order. Emails that match no query
// term are dropped.
func rankBM25(query string, emails []Email, k int) []Email {
	queryTerms := uniqueTerms(tokenize(query))
	if len(queryTerms) == 0 {
		if len(emails) > k {
			return emails[:k]
		}
		return emails
	}

	docs := make([][]string, len(emails))
	totalLen := 0
	for i, e := range emails {
		docs[i] = tokenize(e.Document())
		totalLen += len(docs[i])
	}
	avgLen := float64(totalLen) / float64(len(docs))

	// Document frequency per query term.
	df := make(map[string]int, len(queryTerms))
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range doc {
			seen[term] = true
		}
		for _, term := range queryTerms {
			if seen[term] {
				df[term]++
			}
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, freq := range df {
		idf[term] = math.Log(1 + (n-float64(freq)+0.5)/(float64(freq)+0.5))
	}

	type scored struct {
		index int
		score float64
	}
	var ranked []scored
	for i, doc := range docs {
		tf := make(map[string]int)
		for _, term := range doc {
			tf[term]++
		}

		score := 0.0
		for _, term := range queryTerms {
			f := float64(tf[term])
			if f == 0 {
				continue
			}
			norm := bm25K1 * (1 - bm25B + bm25B*float64(len(doc))/avgLen)
			score += idf[term] * (f * (bm25K1 + 1)) / (f + norm)
		}
		if score > 0 {
			ranked = append(ranked, scored{index: i, score: score})
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	out := make([]Email, len(ranked))
	for i, r := range ranked {
		out[i] = emails[r.index]
	}
	return out
}
