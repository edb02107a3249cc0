// Copyright (c) 2026 Halunder Corpus Project. All rights reserved.

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halunder/corpus/pkg/textnorm"
)

func TestNFC(t *testing.T) {
	// "ä" written as "a" plus combining diaeresis (U+0308) vs the
	// precomposed code point (U+00E4).
	decomposed := "dea\u0308t"
	composed := "de\u00e4t"

	assert.Equal(t, composed, textnorm.NFC(decomposed))

	// Composed input is returned unchanged
	assert.Equal(t, composed, textnorm.NFC(composed))

	// ASCII passes through
	assert.Equal(t, "Moin", textnorm.NFC("Moin"))
}

func TestFoldForMatching(t *testing.T) {
	assert.Equal(t, "de\u00e4t", textnorm.FoldForMatching("DE\u00c4T"))
	assert.Equal(t, "de\u00e4t", textnorm.FoldForMatching("deät"))
	assert.Equal(t, "oaber", textnorm.FoldForMatching("Oaber"))
}
