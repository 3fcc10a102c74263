package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"uilint/internal/core/errors"
	"uilint/internal/engine/model"
)

// Parser turns source text into read-only structural model trees. It is the
// collaborating frontend for the rule engine: the engine itself never sees
// source text, only the trees produced here.
//
// A Parser is safe for concurrent use; each ParseFile call creates its own
// tree-sitter parser instance.
type Parser struct {
	loader *GrammarLoader
}

func NewParser(loader *GrammarLoader) *Parser {
	if loader == nil {
		loader = NewGrammarLoader()
	}
	return &Parser{loader: loader}
}

func (p *Parser) Loader() *GrammarLoader {
	return p.loader
}

func (p *Parser) IsSupportedPath(path string) bool {
	return p.loader.IsSupportedPath(path)
}

// ParseFile parses one source file into component trees. Malformed source
// yields a PARSE_ERROR and no trees; the engine never receives a
// partially-built tree.
func (p *Parser) ParseFile(path string, content []byte) ([]*model.ComponentNode, error) {
	lang := p.loader.DetectLanguage(path)
	if lang == "" {
		return nil, errors.Newf(errors.CodeNotFound, "unsupported file type: %s", path)
	}

	grammar, ok := p.loader.Language(lang)
	if !ok {
		return nil, errors.Newf(errors.CodeInternal, "grammar not loaded: %s", lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.New(errors.CodeParseError, "parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, errors.New(errors.CodeParseError, "parse produced no tree")
	}
	if root.HasError() {
		return nil, errors.AddContext(
			errors.Newf(errors.CodeParseError, "syntax errors in %s", path),
			errors.CtxPath, path,
		)
	}

	ctx := &extractionContext{source: content, path: path}
	var components []*model.ComponentNode
	switch lang {
	case LangHTML:
		components = extractHTML(ctx, root)
	default:
		components = extractComponents(ctx, root)
	}

	for _, c := range components {
		if c.Name == "" {
			return nil, errors.AddContext(
				errors.Newf(errors.CodeParseError, "component at %s has no name", c.ID),
				errors.CtxNode, c.ID,
			)
		}
	}
	return components, nil
}

// nodeID derives a stable node identity from source position, so repeated
// runs over the same input produce identical ids.
func nodeID(path string, node *sitter.Node) string {
	pos := node.StartPosition()
	return fmt.Sprintf("%s:%d:%d", path, pos.Row+1, pos.Column+1)
}
