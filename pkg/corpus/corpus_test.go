package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDirProviderList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "b")
	writeFile(t, dir, "a.txt", "a")
	writeFile(t, dir, "c.md", "c")
	writeFile(t, dir, ".hidden", "h")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	writeFile(t, filepath.Join(dir, "sub"), "d.txt", "d")

	ids, err := NewDirProvider(Options{}).List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "c.md"),
	}, ids)

	ids, err = NewDirProvider(Options{Extensions: []string{".TXT"}}).List(dir)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, err = NewDirProvider(Options{}).List(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestDirProviderRead(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "r.txt", "A  great\tfilm.<br /><br />Loved it\n")

	tokens, err := NewDirProvider(Options{}).Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "great", "film.<br", "/><br", "/>Loved", "it"}, tokens)

	tokens, err = NewDirProvider(Options{StripHTML: true}).Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "great", "film.", "Loved", "it"}, tokens)

	_, err = NewDirProvider(Options{}).Read(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestNormalizeUnicode(t *testing.T) {
	dp := NewDirProvider(Options{NormalizeUnicode: true})

	// "e" followed by a combining acute accent
	tokens, err := dp.Tokenize("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, []string{"caf\u00e9"}, tokens)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", StripHTML("plain text"))
	assert.Equal(t, "bold  &  brave", StripHTML("<b>bold</b> &amp; <i>brave</i>"))
}

func TestIsContentTag(t *testing.T) {
	for _, tag := range []string{"NN", "NNS", "NNP", "VB", "VBZ", "JJ", "JJR", "RB", "RBS"} {
		assert.True(t, IsContentTag(tag), tag)
	}
	for _, tag := range []string{"", "DT", "IN", "PRP", "RP", ".", "CC"} {
		assert.False(t, IsContentTag(tag), tag)
	}
}

func TestPOSTokenizer(t *testing.T) {
	words, err := POSTokenizer{}.Tokenize("The movie was surprisingly good .")
	require.NoError(t, err)
	assert.Contains(t, words, "movie")
	assert.NotContains(t, words, "The")
	assert.NotContains(t, words, ".")
}

func TestDirProviderPartOfSpeech(t *testing.T) {
	path := writeFile(t, t.TempDir(), "r.txt", "The movie was surprisingly good .")

	// Training and classification both read through the provider
	tokens, err := NewDirProvider(Options{PartOfSpeech: true}).Read(path)
	require.NoError(t, err)
	assert.Contains(t, tokens, "movie")
	assert.NotContains(t, tokens, "The")
	assert.NotContains(t, tokens, ".")

	direct, err := NewDirProvider(Options{PartOfSpeech: true}).Tokenize("The movie was surprisingly good .")
	require.NoError(t, err)
	assert.Equal(t, tokens, direct)
}
