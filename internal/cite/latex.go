// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// unicodeLatex maps Unicode characters to LaTeX escapes, for BibLaTeX
// output that survives non-UTF-8 toolchains. Collected from characters
// that have actually shown up in Crossref metadata; extend as needed.
var unicodeLatex = map[string]string{
	"À": "{\\`A}", "Á": "{\\'A}", "Â": "{\\^A}", "Ã": "{\\~A}",
	"Ä": "{\\\"A}", "Å": "{\\AA}", "Æ": "{\\AE}", "Ç": "{\\cC}",
	"È": "{\\`E}", "É": "{\\'E}", "Ê": "{\\^E}", "Ë": "{\\\"E}",
	"Ì": "{\\`I}", "Í": "{\\'I}", "Î": "{\\^I}", "Ï": "{\\\"I}",
	"Ð": "{\\DH}", "Ñ": "{\\~N}", "Ò": "{\\`O}", "Ó": "{\\'O}",
	"Ô": "{\\^O}", "Õ": "{\\~O}", "Ö": "{\\\"O}", "×": "\\(\\times\\)",
	"Ø": "{\\O}", "Ù": "{\\`U}", "Ú": "{\\'U}", "Û": "{\\^U}",
	"Ü": "{\\\"U}", "Ý": "{\\'Y}", "Þ": "{\\TH}", "ß": "{\\ss}",

	"à": "{\\`a}", "á": "{\\'a}", "â": "{\\^a}", "ã": "{\\~a}",
	"ä": "{\\\"a}", "å": "{\\aa}", "æ": "{\\ae}", "ç": "{\\cc}",
	"è": "{\\`e}", "é": "{\\'e}", "ê": "{\\^e}", "ë": "{\\\"e}",
	"ì": "{\\`\\i}", "í": "{\\'\\i}", "î": "{\\^\\i}", "ï": "{\\\"\\i}",
	"ð": "{\\dh}", "ñ": "{\\~n}", "ò": "{\\`o}", "ó": "{\\'o}",
	"ô": "{\\^o}", "õ": "{\\~o}", "ö": "{\\\"o}", "÷": "\\(\\div\\)",
	"ø": "{\\o}", "ù": "{\\`u}", "ú": "{\\'u}", "û": "{\\^u}",
	"ü": "{\\\"u}", "ý": "{\\'y}", "þ": "{\\th}", "ÿ": "{\\\"y}",

	"Ć": "{\\'C}",
	"ć": "{\\'c}",
	"č": "{\\v{c}}",
	"Ē": "{\\=E}",
	"Ł": "{\\L{}}",
	"ł": "{\\l{}}",
	"Ń": "{\\'N}",
	"ń": "{\\'n}",
	"‐": "-",
	"–": "--",
	"—": "---",
}

var latexReplacer *strings.Replacer

func init() {
	pairs := make([]string, 0, 2*len(unicodeLatex))
	for from, to := range unicodeLatex {
		pairs = append(pairs, from, to)
	}
	latexReplacer = strings.NewReplacer(pairs...)
}

// toLatex replaces Unicode characters with their LaTeX escapes.
func toLatex(s string) string {
	return latexReplacer.Replace(s)
}

// asciiFold strips diacritics ("Foroozandeh" stays, "Müller" becomes
// "Muller") and drops any remaining non-ASCII runes. Used to build
// BibLaTeX entry keys, which must be plain ASCII.
func asciiFold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
