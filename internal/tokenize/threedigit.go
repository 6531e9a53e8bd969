package tokenize

import (
	"regexp"
	"strings"
)

// ThreeDigitTokenizer is a general-purpose tokenizer for protocols that
// prefix every reply with a three-digit status code, such as SMTP, NNTP and
// FTP. Unlike HTTP, there's no standardized field for product name and
// version; servers casually announce themselves in the informational
// greeting (codes 200 and 220), so this tokenizer's job is to dig that text
// out and discard the timestamp/"ready"/parenthetical noise around it.
type ThreeDigitTokenizer struct{}

var threeDigitLead = regexp.MustCompile(`^[0-9]{3}[ -]`)

func (ThreeDigitTokenizer) CanTokenize(banner string) bool {
	firstLine := banner
	if idx := strings.Index(banner, "\r\n"); idx >= 0 {
		firstLine = banner[:idx]
	}
	return threeDigitLead.MatchString(firstLine)
}

var weekdayComma = regexp.MustCompile(`(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun),`)

// Tokenize groups continuation lines (code followed by "-") under their
// code until the matching terminal line (code followed by a space) is seen,
// and extracts one greeting token per completed block whose code is 200 or
// 220.
func (ThreeDigitTokenizer) Tokenize(banner string) []string {
	pending := map[string]string{}
	var tokens []string

	for _, line := range strings.Split(banner, "\r\n") {
		if !threeDigitLead.MatchString(line) {
			continue
		}
		code := line[:3]

		if line[3] == '-' {
			if _, open := pending[code]; !open {
				pending[code] = line
			}
			continue
		}

		first := line
		if p, open := pending[code]; open {
			first = p
			delete(pending, code)
		}
		if tok, ok := greetingToken(first); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// greetingToken extracts the greeting text from a 200/220 line, requiring a
// dotted hostname/IP token right after the code to treat it as a genuine
// "host greeting" line rather than some other kind of reply.
func greetingToken(line string) (string, bool) {
	code := line[:3]
	if code != "200" && code != "220" {
		return "", false
	}

	content := strings.TrimLeft(line[4:], " ")
	host, rest, hasRest := strings.Cut(content, " ")
	if !hasRest {
		rest = ""
	}
	if !strings.Contains(host, ".") {
		return "", false
	}

	cutoff := len(rest)
	if i := strings.IndexByte(rest, '('); i >= 0 && i < cutoff {
		cutoff = i
	}
	if i := strings.Index(strings.ToLower(rest), "ready"); i >= 0 && i < cutoff {
		cutoff = i
	}
	if loc := weekdayComma.FindStringIndex(rest); loc != nil && loc[0] < cutoff {
		cutoff = loc[0]
	}

	tok := strings.TrimRight(rest[:cutoff], " ")
	if tok == "" {
		return "", false
	}
	return tok, true
}
