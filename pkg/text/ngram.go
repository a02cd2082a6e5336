package text

import "strings"

// NGrams joins every run of n consecutive words with a space. A sequence of
// length L yields max(0, L-n+1) phrases; n == 1 returns a copy of words.
// n < 1 yields nil.
func NGrams(n int, words []string) []string {
	if n < 1 {
		return nil
	}

	count := len(words) - n + 1
	if count <= 0 {
		return []string{}
	}

	out := make([]string, count)
	for i := range out {
		out[i] = strings.Join(words[i:i+n], " ")
	}

	return out
}
