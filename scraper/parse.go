package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"repoanalysis/models"
)

// ParseCount converts human readable counts such as "1,234" or "5000+" to
// an integer.
func ParseCount(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "+")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, raw)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, raw)
	}
	return n, nil
}

// ParseContributors is ParseCount with the unbounded glyph mapped to
// models.UnboundedContributors.
func ParseContributors(raw string) (int, error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), "+")
	if s == models.UnboundedGlyph {
		return models.UnboundedContributors, nil
	}
	return ParseCount(s)
}

// LanguageLabel returns the primary language from the text of a language
// bar, e.g. "Jupyter Notebook 97.1% Python 2.9%" gives "Jupyter Notebook".
func LanguageLabel(text string) string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return models.LanguageNone
	}

	for i, tok := range tokens {
		if isPercentage(tok) {
			if i == 0 {
				break
			}
			return strings.Join(tokens[:i], " ")
		}
	}

	if tokens[0] == "Jupyter" && len(tokens) > 1 {
		return tokens[0] + " " + tokens[1]
	}
	return tokens[0]
}

// percentage also matches shares glued to the next label, e.g. "97.1%Python".
var percentage = regexp.MustCompile(`^\d+(?:\.\d+)?%`)

func isPercentage(tok string) bool {
	return percentage.MatchString(tok)
}
