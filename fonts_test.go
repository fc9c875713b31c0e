package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCJKFontsRanking(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"DejaVuSans.ttf",       // no CJK keyword, skipped
		"wqy-microhei.ttc.txt", // wrong extension, skipped
		"simhei.ttf",
		"NotoSansCJK-Regular.otf",
		"wqy-zenhei.ttf",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	got := findCJKFontsIn([]string{dir})
	require.Len(t, got, 3)
	// Noto ranks first, then WenQuanYi, then the plain hei match
	assert.Equal(t, "NotoSansCJK-Regular.otf", filepath.Base(got[0]))
	assert.Equal(t, "wqy-zenhei.ttf", filepath.Base(got[1]))
	assert.Equal(t, "simhei.ttf", filepath.Base(got[2]))
}

func TestFindCJKFontsMissingDir(t *testing.T) {
	got := findCJKFontsIn([]string{"/no/such/dir"})
	assert.Empty(t, got)
}

func TestFontDirsNonEmpty(t *testing.T) {
	assert.NotEmpty(t, fontDirs())
}
