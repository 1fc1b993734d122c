package parser

import (
	"fmt"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"

	tree_sitter_yaml "github.com/tree-sitter-grammars/tree-sitter-yaml/bindings/go"
)

// LanguageName is the name of the only grammar the parser loads.
const LanguageName = "yaml"

var (
	languageOnce sync.Once
	language     *sitter.Language
	languageErr  error
)

// Language returns the YAML grammar, loading it on first use.
// A grammar that cannot be loaded is reported as ErrLanguageLoad on every call.
func Language() (*sitter.Language, error) {
	languageOnce.Do(func() {
		language, languageErr = loadLanguage()
	})
	return language, languageErr
}

// loadLanguage wraps the grammar and checks that the runtime accepts its ABI.
func loadLanguage() (*sitter.Language, error) {
	ptr := tree_sitter_yaml.Language()
	if ptr == nil {
		return nil, fmt.Errorf("%w: %s grammar is not linked", ErrLanguageLoad, LanguageName)
	}
	lang := sitter.NewLanguage(ptr)

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLanguageLoad, err)
	}
	return lang, nil
}
