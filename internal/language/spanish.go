package language

import (
	"regexp"

	"github.com/kljensen/snowball/spanish"
)

// snowballSpanish wraps the snowball Spanish stemmer. Stop words are kept:
// short function words carry signal in near-identical questions like
// "¿cuál es el precio?" vs "¿cuál es el horario?".
type snowballSpanish struct{}

func (snowballSpanish) Stem(token string) string {
	return spanish.Stem(token, false)
}

func mustCompileAll(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		res = append(res, regexp.MustCompile(e))
	}
	return res
}

// Spanish returns the profile the engine ships with: the interrogative word
// list, the snowball stemmer, and the keyword buckets used to tag patterns
// with a category.
func Spanish() *Profile {
	return &Profile{
		Tokenizer: WordTokenizer{},
		Stemmer:   snowballSpanish{},
		Lexicon: NewLexicon(
			"quien", "quién", "quienes", "quiénes",
			"que", "qué", "cual", "cuál", "cuales", "cuáles",
			"como", "cómo", "donde", "dónde", "cuando", "cuándo",
			"porque", "porqué",
			"cuanto", "cuánto", "cuantos", "cuántos",
		),
		Categories: []CategoryRule{
			{
				Category: "producto",
				Patterns: mustCompileAll(`precio`, `costo`, `cuánto`, `cuanto`, `vale`, `cuenta`, `comprar`),
			},
			{
				Category: "soporte",
				Patterns: mustCompileAll(`ayuda`, `problema`, `error`, `funciona`, `no puedo`, `falla`),
			},
			{
				Category: "info",
				Patterns: mustCompileAll(`información`, `horario`, `contacto`, `ubicación`, `dirección`, `teléfono`),
			},
		},
	}
}
