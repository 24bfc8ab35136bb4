package store

import (
	"errors"
	"strings"
)

// Ranks are lowercase base36 strings ordered lexicographically. Items of a
// list are stored by rank so a single insert never renumbers its siblings.
const rankAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const rankBase = len(rankAlphabet)

func rankDigit(c byte) (int, bool) {
	i := strings.IndexByte(rankAlphabet, c)
	return i, i >= 0
}

// RankBetween returns a rank strictly between lo and hi. Either bound may be
// empty, meaning unbounded.
func RankBetween(lo, hi string) (string, error) {
	lo = strings.ToLower(strings.TrimSpace(lo))
	hi = strings.ToLower(strings.TrimSpace(hi))
	if lo != "" && hi != "" && lo >= hi {
		return "", errors.New("rank: lower bound must sort before upper bound")
	}

	out := make([]byte, 0, len(lo)+1)
	for i := 0; i < 256; i++ {
		dl, dh := 0, rankBase-1
		if i < len(lo) {
			d, ok := rankDigit(lo[i])
			if !ok {
				return "", errors.New("rank: invalid character in lower bound")
			}
			dl = d
		}
		if i < len(hi) {
			d, ok := rankDigit(hi[i])
			if !ok {
				return "", errors.New("rank: invalid character in upper bound")
			}
			dh = d
		}
		switch {
		case dl == dh:
			out = append(out, rankAlphabet[dl])
		case dh-dl > 1:
			out = append(out, rankAlphabet[dl+(dh-dl)/2])
			return checkBetween(string(out), lo, hi)
		default:
			// Adjacent digits: any extension of lo stays below hi.
			return checkBetween(lo+"0", lo, hi)
		}
	}
	return "", errors.New("rank: no space between bounds")
}

func checkBetween(r, lo, hi string) (string, error) {
	if (lo != "" && r <= lo) || (hi != "" && r >= hi) {
		// e.g. "y" and "y0": nothing sorts strictly between them.
		return "", errors.New("rank: no space between bounds")
	}
	return r, nil
}

func RankAfter(lo string) (string, error) { return RankBetween(lo, "") }

// Ranks returns n evenly spaced ranks of equal width, in ascending order.
func Ranks(n int) ([]string, error) {
	if n < 0 {
		return nil, errors.New("rank: negative count")
	}
	width, span := 1, rankBase
	for span <= n {
		width++
		span *= rankBase
	}
	step := span / (n + 1)
	out := make([]string, n)
	for j := range out {
		v := (j + 1) * step
		b := make([]byte, width)
		for k := width - 1; k >= 0; k-- {
			b[k] = rankAlphabet[v%rankBase]
			v /= rankBase
		}
		out[j] = string(b)
	}
	return out, nil
}
