package resolve

// Ratio measures how alike two strings are as 2*M/(len(a)+len(b)), where M
// is the total length of the matching blocks shared by both. 1.0 means
// identical, 0.0 means nothing in common.
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	matched := matchingLength([]rune(a), []rune(b))
	return 2.0 * float64(matched) / float64(len([]rune(a))+len([]rune(b)))
}

// matchingLength sums the longest common block and the matches on either
// side of it, mirroring how sequence matchers count shared content.
func matchingLength(a, b []rune) int {
	ai, bi, size := longestBlock(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingLength(a[:ai], b[:bi])
	total += matchingLength(a[ai+size:], b[bi+size:])
	return total
}

func longestBlock(a, b []rune) (bestA, bestB, bestSize int) {
	// lengths[j] holds the match length ending at a[i-1], b[j-1].
	lengths := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0
		for j := 1; j <= len(b); j++ {
			cur := lengths[j]
			if a[i-1] == b[j-1] {
				lengths[j] = prev + 1
				if lengths[j] > bestSize {
					bestSize = lengths[j]
					bestA = i - bestSize
					bestB = j - bestSize
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return bestA, bestB, bestSize
}
