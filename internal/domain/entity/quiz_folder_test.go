package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSubject(t *testing.T) {
	assert.True(t, IsValidSubject("Droit Civil"))
	assert.True(t, IsValidSubject("droit civil"), "match is case-insensitive")
	assert.False(t, IsValidSubject("Astrophysique"))
	assert.False(t, IsValidSubject(""))
}

func TestIsValidLevel(t *testing.T) {
	assert.True(t, IsValidLevel("L1"))
	assert.True(t, IsValidLevel("m2"))
	assert.False(t, IsValidLevel("L4"))
	assert.False(t, IsValidLevel(""))
}

func TestIsValidVisibility(t *testing.T) {
	assert.True(t, IsValidVisibility(VisibilityPrivate))
	assert.True(t, IsValidVisibility(VisibilityPublic))
	assert.False(t, IsValidVisibility("hidden"))
}

func TestQuizFolder_IsPublic(t *testing.T) {
	f := &QuizFolder{Visibility: VisibilityPrivate}
	assert.False(t, f.IsPublic())

	f.Visibility = VisibilityPublic
	assert.True(t, f.IsPublic())
}
