package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetterFromScore(t *testing.T) {
	assert.Equal(t, "A", LetterFromScore(92, 100))
	assert.Equal(t, "A", LetterFromScore(90, 100))
	assert.Equal(t, "B", LetterFromScore(85, 100))
	assert.Equal(t, "C", LetterFromScore(78, 100))
	assert.Equal(t, "D", LetterFromScore(60, 100))
	assert.Equal(t, "F", LetterFromScore(59.9, 100))
	assert.Equal(t, "F", LetterFromScore(0, 100))
}

func TestLetterFromScoreScalesToMax(t *testing.T) {
	// 46/50 = 92%
	assert.Equal(t, "A", LetterFromScore(46, 50))
	// 35/50 = 70%
	assert.Equal(t, "C", LetterFromScore(35, 50))
}

func TestLetterFromScoreZeroMaxFallsBackTo100(t *testing.T) {
	assert.Equal(t, "B", LetterFromScore(80, 0))
}
