package tokenize

import (
	"regexp"
	"strings"
)

// HTTPTokenizer extracts product/version tokens from an HTTP response's
// well-known headers (Server, X-Powered-By, and the X-*-Version family).
// These fields generally list several products back to back with no
// standardized separator, so the bulk of the work is splitting a value into
// per-product words while keeping a "product/version" pair together.
type HTTPTokenizer struct{}

func (HTTPTokenizer) CanTokenize(banner string) bool {
	return strings.HasPrefix(banner, "HTTP/")
}

type header struct {
	name  string
	value string
}

func headerLines(banner string) []header {
	body := banner
	if idx := strings.Index(body, "\r\n\r\n"); idx >= 0 {
		body = body[:idx]
	}

	lines := strings.Split(body, "\r\n")
	if len(lines) <= 1 {
		return nil
	}

	headers := make([]header, 0, len(lines)-1)
	for _, line := range lines[1:] { // skip the status line
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		headers = append(headers, header{
			name:  strings.TrimSpace(line[:idx]),
			value: strings.TrimSpace(line[idx+1:]),
		})
	}
	return headers
}

func (HTTPTokenizer) Tokenize(banner string) []string {
	var tokens []string
	for _, h := range headerLines(banner) {
		lower := strings.ToLower(h.name)
		switch {
		case lower == "server" || lower == "x-powered-by":
			tokens = append(tokens, splitWords(h.value)...)
		case lower == "x-page-speed" || strings.HasSuffix(lower, "-version"):
			tokens = append(tokens, nameValueAtom(h.name, h.value))
		}
	}
	return tokens
}

func nameValueAtom(name, value string) string {
	if len(name) >= 2 && strings.EqualFold(name[:2], "x-") {
		name = name[2:]
	}
	return name + "/" + value
}

// servletVersionRe catches the "Servlet 2.5;" style seen in the wild for
// Java servlet containers and folds it into a single "Servlet/2.5;" atom
// before the generic word split runs.
var servletVersionRe = regexp.MustCompile(`([A-Za-z][\w.-]*) ([0-9][\w.+~-]*);`)

func splitWords(value string) []string {
	value = servletVersionRe.ReplaceAllString(value, "$1/$2;")

	var tokens []string
	for _, raw := range splitDelims(value) {
		tokens = append(tokens, splitSlash(raw)...)
	}
	return tokens
}

// splitDelims breaks a header value into raw words on whitespace and a
// handful of punctuation marks. Parenthesized comments fall out of this for
// free: "(" and ")" are themselves delimiters, so their contents get split
// the same way as everything else.
func splitDelims(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', ',', ':', '=', '(', ')':
			return true
		default:
			return false
		}
	})
}

// splitSlash keeps "product/version" together when the text after the slash
// looks like a version (starts with a digit), and otherwise treats the
// slash as just another delimiter.
func splitSlash(word string) []string {
	if word == "" {
		return nil
	}
	idx := strings.IndexByte(word, '/')
	if idx < 0 {
		return []string{word}
	}

	prefix, suffix := word[:idx], word[idx+1:]
	if suffix != "" && suffix[0] >= '0' && suffix[0] <= '9' {
		return []string{word}
	}

	var out []string
	if prefix != "" {
		out = append(out, prefix)
	}
	return append(out, splitSlash(suffix)...)
}
