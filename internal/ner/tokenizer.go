package ner

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// word is a whitespace/punctuation-delimited unit of the source text with
// its byte offsets preserved, so decoded entities are always exact
// substrings of the input.
type word struct {
	text  string
	start int
	end   int
}

// piece is one wordpiece of a word. first marks the piece carrying the
// word's label during decoding.
type piece struct {
	id    int
	word  int // index into the window's word slice
	first bool
}

// tokenizer is a WordPiece tokenizer over a BERT-style vocab file
// (one token per line, line number = token id, "##" continuation prefix).
type tokenizer struct {
	vocab map[string]int
	unkID int
	clsID int
	sepID int
}

const (
	unkToken = "[UNK]"
	clsToken = "[CLS]"
	sepToken = "[SEP]"

	// maxWordChars guards the greedy longest-match loop against
	// pathological unbroken runs.
	maxWordChars = 100
)

func loadTokenizer(path string) (*tokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vocab := make(map[string]int)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 0; sc.Scan(); i++ {
		vocab[sc.Text()] = i
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	t := &tokenizer{vocab: vocab}
	var ok bool
	if t.unkID, ok = vocab[unkToken]; !ok {
		return nil, fmt.Errorf("vocab missing %s", unkToken)
	}
	if t.clsID, ok = vocab[clsToken]; !ok {
		return nil, fmt.Errorf("vocab missing %s", clsToken)
	}
	if t.sepID, ok = vocab[sepToken]; !ok {
		return nil, fmt.Errorf("vocab missing %s", sepToken)
	}
	return t, nil
}

func (t *tokenizer) size() int { return len(t.vocab) }

// words splits text on whitespace and breaks punctuation into its own
// words, tracking byte offsets. This mirrors BERT basic tokenization
// without lowercasing the stored text, so entity spans keep source casing.
func (t *tokenizer) words(text string) []word {
	var out []word
	start := -1
	flush := func(end int) {
		if start >= 0 {
			out = append(out, word{text: text[start:end], start: start, end: end})
			start = -1
		}
	}
	for i, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush(i)
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush(i)
			end := i + len(string(r))
			out = append(out, word{text: text[i:end], start: i, end: end})
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(text))
	return out
}

// encodeWindow converts as many leading words as fit in maxTokens
// wordpieces (leaving room for [CLS]/[SEP]) and returns how many words it
// consumed. At least one word is always consumed so callers make progress.
func (t *tokenizer) encodeWindow(words []word, maxTokens int) (int, []piece) {
	budget := maxTokens - 2
	if budget < 1 {
		budget = 1
	}
	var pieces []piece
	consumed := 0
	for wi, w := range words {
		wp := t.wordpieces(w.text, wi)
		if consumed > 0 && len(pieces)+len(wp) > budget {
			break
		}
		pieces = append(pieces, wp...)
		consumed++
	}
	return consumed, pieces
}

// wordpieces applies greedy longest-match WordPiece to a single word,
// lowercased for lookup (uncased vocab). Words with no decomposition
// collapse to a single [UNK] piece.
func (t *tokenizer) wordpieces(text string, wordIdx int) []piece {
	lower := strings.ToLower(text)
	runes := []rune(lower)
	if len(runes) > maxWordChars {
		return []piece{{id: t.unkID, word: wordIdx, first: true}}
	}

	var out []piece
	start := 0
	for start < len(runes) {
		end := len(runes)
		id := -1
		for end > start {
			sub := string(runes[start:end])
			if start > 0 {
				sub = "##" + sub
			}
			if v, ok := t.vocab[sub]; ok {
				id = v
				break
			}
			end--
		}
		if id < 0 {
			return []piece{{id: t.unkID, word: wordIdx, first: true}}
		}
		out = append(out, piece{id: id, word: wordIdx, first: start == 0})
		start = end
	}
	return out
}
