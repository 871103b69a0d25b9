// Package estimate implements the user-frequency learning curve applied
// to phrases as they are committed: short-term reinforcement, medium-term
// reinforcement, and long-term decay toward the dictionary's original
// frequency.
package estimate

import "github.com/chewing/gochewing/internal/dictionary"

const (
	shortIncreaseFreq  = 10
	mediumIncreaseFreq = 5
	longDecreaseFreq   = 10
	maxUserFreq        = 99999999
)

// UserFreqEstimate advances a logical clock and computes the new
// frequency a phrase should carry after being committed again.
type UserFreqEstimate interface {
	Tick()
	Now() uint64
	Estimate(phrase dictionary.Phrase, origFreq, maxFreq uint32) uint32
}

// Lax is a lenient estimator: frequent reuse within a short window climbs
// fast, reuse within a medium window climbs slower, and long idle phrases
// decay back toward their original dictionary frequency.
type Lax struct {
	lifetime uint64
}

// NewLax returns an estimator with its clock seeded at initialLifetime,
// matching a brand new user dictionary with no history.
func NewLax(initialLifetime uint64) *Lax {
	return &Lax{lifetime: initialLifetime}
}

// OpenLax seeds the clock from the newest LastUsed tick among entries,
// matching a user dictionary reopened from disk.
func OpenLax(entries []dictionary.Phrase) *Lax {
	var lifetime uint64
	for _, e := range entries {
		if e.LastUsed > lifetime {
			lifetime = e.LastUsed
		}
	}
	return &Lax{lifetime: lifetime}
}

func (l *Lax) Tick()       { l.lifetime++ }
func (l *Lax) Now() uint64 { return l.lifetime }

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// Estimate computes the next frequency for phrase given the dictionary's
// original (unlearned) frequency and the max frequency among its sibling
// candidates.
func (l *Lax) Estimate(phrase dictionary.Phrase, origFreq, maxFreq uint32) uint32 {
	lastUsed := phrase.LastUsed
	if lastUsed == 0 {
		lastUsed = l.lifetime
	}
	deltaTime := l.lifetime - lastUsed

	switch {
	case deltaTime < 4000:
		var delta uint32
		if phrase.Freq >= maxFreq {
			delta = minU32((maxFreq-origFreq)/5+1, shortIncreaseFreq)
		} else {
			delta = maxU32((maxFreq-origFreq)/5+1, shortIncreaseFreq)
		}
		return minU32(phrase.Freq+delta, maxUserFreq)
	case deltaTime < 50000:
		var delta uint32
		if phrase.Freq >= maxFreq {
			delta = minU32((maxFreq-origFreq)/10+1, mediumIncreaseFreq)
		} else {
			delta = maxU32((maxFreq-origFreq)/10+1, mediumIncreaseFreq)
		}
		return minU32(phrase.Freq+delta, maxUserFreq)
	default:
		var diff uint32
		if phrase.Freq > origFreq {
			diff = phrase.Freq - origFreq
		}
		delta := maxU32(diff/5, longDecreaseFreq)
		if delta >= phrase.Freq {
			return origFreq
		}
		return maxU32(phrase.Freq-delta, origFreq)
	}
}
