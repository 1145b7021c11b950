package learning

import "github.com/franvarela/lorobot/internal/language"

// Similarity scores two texts in [0,1] by the Jaccard coefficient of their
// distinct stem sets. Symmetric; 0 when either side tokenizes to nothing.
func Similarity(profile *language.Profile, a, b string) float64 {
	tokensA := profile.Tokenizer.Tokenize(a)
	tokensB := profile.Tokenizer.Tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	setA := stemSet(profile, tokensA)
	setB := stemSet(profile, tokensB)

	intersection := 0
	for stem := range setA {
		if _, ok := setB[stem]; ok {
			intersection++
		}
	}

	return float64(intersection) / float64(len(setA)+len(setB)-intersection)
}

func stemSet(profile *language.Profile, tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[profile.Stemmer.Stem(t)] = struct{}{}
	}
	return set
}
