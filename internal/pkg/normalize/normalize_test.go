package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", CollapseSpaces("  a \t b\n\nc  "))
	assert.Equal(t, "", CollapseSpaces("   \t\n"))
	assert.Equal(t, "already clean", CollapseSpaces("already clean"))
}

func TestSourceName(t *testing.T) {
	assert.Equal(t, "the matrix", SourceName("The   Matrix"))
	assert.Equal(t, "the matrix", SourceName("  the MATRIX\t"))
	// two raw names differing only by case/whitespace normalize identically
	assert.Equal(t, SourceName("War  and Peace"), SourceName("war and peace "))
}

func TestQuoteTextKeepsCase(t *testing.T) {
	assert.Equal(t, "To be, or NOT to be", QuoteText("To be,   or NOT to be "))
}
