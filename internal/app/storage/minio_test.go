package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentKey(t *testing.T) {
	a := DocumentKey([]byte("contenu pdf"))
	b := DocumentKey([]byte("contenu pdf"))
	c := DocumentKey([]byte("autre contenu"))

	// Adressage par contenu: déterministe, distinct par contenu
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	assert.True(t, strings.HasPrefix(a, "doc_"))
	assert.True(t, strings.HasSuffix(a, ".pdf"))
	assert.Len(t, a, len("doc_")+32+len(".pdf"))
}
