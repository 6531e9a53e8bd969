// Package tokenize extracts product/version-ish words from raw service
// banners, giving the matcher stage clean tokens to fingerprint against the
// CPE dictionary and regex catalogues.
package tokenize

// Tokenizer extracts tokens from a raw banner it recognizes the shape of.
type Tokenizer interface {
	CanTokenize(banner string) bool
	Tokenize(banner string) []string
}

var tokenizers = []Tokenizer{
	HTTPTokenizer{},
	ThreeDigitTokenizer{},
}

// Auto tries each known tokenizer in turn and returns the first one that
// claims the banner. A banner none of them recognize is returned verbatim as
// its own single token, so callers always get something to match against.
func Auto(banner string) []string {
	for _, t := range tokenizers {
		if t.CanTokenize(banner) {
			return t.Tokenize(banner)
		}
	}
	return []string{banner}
}
