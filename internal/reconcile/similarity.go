package reconcile

import "strings"

// NormalizeName canonicalizes an issuer name for similarity comparison:
// uppercase, strip every character outside [A-Z0-9 ], collapse runs of
// spaces, trim.
func NormalizeName(name string) string {
	upper := strings.ToUpper(name)

	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Ratio computes the Ratcliff-Obershelp similarity of two strings in
// [0, 1]: twice the number of matching characters divided by the total
// length. Matching characters are summed over recursively found longest
// matching blocks with ties broken toward the earliest block, which
// makes the result identical to Python's difflib SequenceMatcher.ratio
// for ASCII input (normalized names are ASCII by construction).
//
// Two empty strings are perfectly similar (1.0); exactly one empty
// string is completely dissimilar (0.0).
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	b2j := make(map[byte][]int, len(b))
	for j := 0; j < len(b); j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	matched := matchingSize(a, b, 0, len(a), 0, len(b), b2j)
	return 2 * float64(matched) / float64(len(a)+len(b))
}

// matchingSize sums the sizes of all matching blocks between a[alo:ahi]
// and b[blo:bhi]: the longest block first, then recursion on the pieces
// to its left and right.
func matchingSize(a, b string, alo, ahi, blo, bhi int, b2j map[byte][]int) int {
	i, j, size := longestMatch(a, alo, ahi, blo, bhi, b2j)
	if size == 0 {
		return 0
	}
	return size +
		matchingSize(a, b, alo, i, blo, j, b2j) +
		matchingSize(a, b, i+size, ahi, j+size, bhi, b2j)
}

// longestMatch finds the longest block a[i:i+size] == b[j:j+size] with
// alo <= i < i+size <= ahi and blo <= j < j+size <= bhi. Among equally
// long blocks the one starting earliest in a, then earliest in b, wins.
func longestMatch(a string, alo, ahi, blo, bhi int, b2j map[byte][]int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	// j2len[j] is the length of the match ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}

	return besti, bestj, bestsize
}
