package main

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
)

// FontConfig is resolved once at startup and handed to every renderer.
// TrueType backs the go-chart pie renderer; Plot names the typeface the
// gonum renderers use (registered in gonum's font cache when a CJK font was
// found, otherwise the library default).
type FontConfig struct {
	Name     string
	TrueType *truetype.Font
	Plot     font.Font
}

const plotTypeface = "PlotMCP-CJK"

// Keyword match on the file name, in preference order. Mirrors the usual
// CJK candidates: Noto CJK, WenQuanYi, the Windows/macOS staples.
var cjkFontKeywords = []string{
	"notosanscjk",
	"notoserifcjk",
	"wqy",
	"microhei",
	"zenhei",
	"uming",
	"ukai",
	"yahei",
	"msyh",
	"simhei",
	"simsun",
	"hei",
	"song",
}

func fontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return []string{"/System/Library/Fonts", "/Library/Fonts", filepath.Join(home, "Library", "Fonts")}
	case "windows":
		return []string{`C:\Windows\Fonts`}
	default:
		return []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
			filepath.Join(home, ".fonts"),
			filepath.Join(home, ".local", "share", "fonts"),
		}
	}
}

// findCJKFonts walks the platform font directories and returns candidate
// font files ordered by keyword preference.
func findCJKFonts() []string {
	return findCJKFontsIn(fontDirs())
}

func findCJKFontsIn(dirs []string) []string {
	type candidate struct {
		path string
		rank int
	}
	var found []candidate
	for _, dir := range dirs {
		filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			name := strings.ToLower(filepath.Base(path))
			if !strings.HasSuffix(name, ".ttf") && !strings.HasSuffix(name, ".otf") {
				return nil
			}
			for rank, kw := range cjkFontKeywords {
				if strings.Contains(name, kw) {
					found = append(found, candidate{path: path, rank: rank})
					break
				}
			}
			return nil
		})
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].rank < found[j].rank })
	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.path
	}
	return paths
}

// LoadFonts builds the process font configuration. The first candidate that
// parses under both font stacks wins; with no usable CJK font the renderers
// fall back to each library's bundled face.
func LoadFonts() *FontConfig {
	for _, path := range findCJKFonts() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		tt, err := truetype.Parse(data)
		if err != nil {
			debugf("font %s rejected by truetype: %v", path, err)
			continue
		}
		ot, err := opentype.Parse(data)
		if err != nil {
			debugf("font %s rejected by opentype: %v", path, err)
			continue
		}
		fnt := font.Font{Typeface: plotTypeface}
		font.DefaultCache.Add([]font.Face{{Font: fnt, Face: ot}})
		log.Printf("using CJK font %s", filepath.Base(path))
		return &FontConfig{Name: filepath.Base(path), TrueType: tt, Plot: fnt}
	}
	log.Printf("no CJK font found, falling back to built-in fonts")
	return &FontConfig{Plot: plot.DefaultFont}
}
