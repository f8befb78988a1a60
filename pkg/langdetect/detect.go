// Package langdetect names the language of a fenced or indented code
// block. A fence info string wins; otherwise the body is classified with
// shebangs, a few textual heuristics and go-enry's Bayesian classifier.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const langText = "text"

// classifierCandidates limits go-enry's classifier to languages that show
// up in documentation.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// sample is a code body prepared once for the heuristics.
type sample struct {
	raw     string
	trimmed string
}

func (s sample) has(subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s.raw, sub) {
			return false
		}
	}
	return true
}

func (s sample) hasAny(subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s.raw, sub) {
			return true
		}
	}
	return false
}

func (s sample) startsWith(prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s.trimmed, prefix) {
			return true
		}
	}
	return false
}

// heuristic recognizes one language from distinctive text. Heuristics are
// tried in order, so the more specific ones come first.
type heuristic struct {
	lang  string
	match func(s sample) bool
}

var heuristics = []heuristic{
	{"go", func(s sample) bool { return s.startsWith("package ") }},
	{"python", func(s sample) bool {
		return s.has("def ", "):") ||
			s.has("import ") && !s.has("import (") && (s.has("from ") || s.startsWith("import ")) ||
			s.hasAny("__name__", "__main__")
	}},
	{"html", func(s sample) bool {
		lower := strings.ToLower(s.trimmed)
		for _, tag := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
			if strings.Contains(lower, tag) {
				return true
			}
		}
		return false
	}},
	{"json", func(s sample) bool { return s.startsWith("{", "[") && s.has(`"`) }},
	{"dockerfile", func(s sample) bool {
		return s.startsWith("FROM ") || s.has("\nFROM ", "\nRUN ") || s.has("WORKDIR ", "COPY ")
	}},
	{"sql", func(s sample) bool {
		upper := sample{trimmed: strings.ToUpper(s.trimmed)}
		return upper.startsWith("SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ")
	}},
	{"rust", func(s sample) bool { return s.hasAny("fn main()", "println!", "let mut ") }},
	{"javascript", func(s sample) bool { return s.hasAny("=>", "const ", "let ", "console.log") }},
	{"yaml", looksLikeYAML},
}

// looksLikeYAML reports whether at least two lines read as mapping keys or
// list items.
func looksLikeYAML(s sample) bool {
	entries := 0
	for _, line := range strings.Split(s.raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`) {
			entries++
		}
		if strings.HasPrefix(line, "- ") {
			entries++
		}
	}
	return entries >= 2
}

// Detect classifies a code body and returns a lowercase fence tag, or
// "text" when no strategy is confident.
func Detect(content []byte) string {
	if len(content) == 0 {
		return langText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	s := sample{raw: string(content), trimmed: string(bytes.TrimSpace(content))}
	for _, h := range heuristics {
		if h.match(s) {
			return h.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return langText
}

// Infer returns the language tag of a code block. The first word of a
// non-empty info string is canonicalized through go-enry's alias table
// ("golang" becomes "go"); without one the body is classified. Returns ""
// when nothing is known.
func Infer(info, body []byte) string {
	if fields := bytes.Fields(info); len(fields) > 0 {
		tag := strings.Trim(string(fields[0]), "{}.")
		if tag == "" {
			return ""
		}
		if lang, ok := enry.GetLanguageByAlias(tag); ok {
			return normalize(lang)
		}
		return strings.ToLower(tag)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	if lang := Detect(body); lang != langText {
		return lang
	}
	return ""
}

// normalize turns a go-enry language name into a fence tag.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
