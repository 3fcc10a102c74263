package parser

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"uilint/internal/shared/util"
)

// Supported source languages. JSX lives in the javascript grammar, TSX in
// the typescript binding's TSX variant; plain HTML fragments get an
// element-only tree.
const (
	LangJavaScript = "javascript"
	LangTSX        = "tsx"
	LangHTML       = "html"
)

type GrammarLoader struct {
	languages  map[string]*sitter.Language
	extensions map[string]string
}

func NewGrammarLoader() *GrammarLoader {
	return &GrammarLoader{
		languages: map[string]*sitter.Language{
			LangJavaScript: sitter.NewLanguage(tree_sitter_javascript.Language()),
			LangTSX:        sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
			LangHTML:       sitter.NewLanguage(tree_sitter_html.Language()),
		},
		extensions: map[string]string{
			".js":   LangJavaScript,
			".jsx":  LangJavaScript,
			".mjs":  LangJavaScript,
			".cjs":  LangJavaScript,
			".ts":   LangTSX,
			".tsx":  LangTSX,
			".html": LangHTML,
			".htm":  LangHTML,
		},
	}
}

func (l *GrammarLoader) Language(langID string) (*sitter.Language, bool) {
	lang, ok := l.languages[langID]
	return lang, ok
}

// DetectLanguage maps a file path to a language id, empty when unsupported.
func (l *GrammarLoader) DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return l.extensions[ext]
}

func (l *GrammarLoader) IsSupportedPath(path string) bool {
	return l.DetectLanguage(path) != ""
}

// SupportedExtensions returns the recognized file extensions in sorted
// order, for stable log output.
func (l *GrammarLoader) SupportedExtensions() []string {
	return util.SortedStringKeys(l.extensions)
}
