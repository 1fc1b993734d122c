package parser

import (
	"errors"
	"testing"
)

func TestLanguage(t *testing.T) {
	lang, err := Language()
	if err != nil {
		t.Fatalf("Failed to load language: %v", err)
	}
	if lang == nil {
		t.Fatal("Language is nil")
	}

	again, err := Language()
	if err != nil {
		t.Fatalf("Second load failed: %v", err)
	}
	if again != lang {
		t.Error("Language should be loaded once and reused")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		content   string
		wantError bool
	}{
		{
			name:    "lets config",
			content: "shell: bash\nmixins:\n  - lets.my.yaml\ncommands:\n  test:\n    cmd: echo Test",
		},
		{
			name:    "empty document",
			content: "",
		},
		{
			name:      "unterminated flow sequence",
			content:   "commands:\n  test:\n    depends: [a, b\n    cmd: echo",
			wantError: true,
		},
		{
			name:      "unterminated quote",
			content:   "shell: \"bash\ncommands:\n  test: {",
			wantError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := Parse(tc.content)
			if err != nil {
				t.Fatalf("Parse should always yield a tree, got error: %v", err)
			}
			defer tree.Close()

			if tree.Root() == nil {
				t.Fatal("Root node is nil")
			}
			// error recovery may wrap a broken document in an ERROR root
			if !tc.wantError && tree.Root().Kind() != "stream" {
				t.Errorf("Expected root kind stream, got %s", tree.Root().Kind())
			}
			if tree.HasErrors() != tc.wantError {
				t.Errorf("HasErrors() = %v, want %v", tree.HasErrors(), tc.wantError)
			}
			if tc.wantError && len(tree.Errors()) == 0 {
				t.Error("Expected at least one syntax error location")
			}
			if !tc.wantError && len(tree.Errors()) != 0 {
				t.Errorf("Expected no syntax errors, got %v", tree.Errors())
			}
		})
	}
}

func TestTreeText(t *testing.T) {
	content := "mixins:\n  - lets.my.yaml\n"
	tree, err := Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	defer tree.Close()

	scalars := findNodes(tree.Root(), "string_scalar")
	if len(scalars) != 2 {
		t.Fatalf("Expected 2 scalars, got %d", len(scalars))
	}
	if got := tree.Text(scalars[0]); got != "mixins" {
		t.Errorf("Expected text mixins, got %q", got)
	}
	if got := tree.Text(scalars[1]); got != "lets.my.yaml" {
		t.Errorf("Expected text lets.my.yaml, got %q", got)
	}
	if got := tree.Text(nil); got != "" {
		t.Errorf("Expected empty text for nil node, got %q", got)
	}
}

func TestErrorsAreOneBased(t *testing.T) {
	tree, err := Parse("a: [b\n")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	defer tree.Close()

	for _, parseErr := range tree.Errors() {
		if parseErr.Line < 1 || parseErr.Column < 1 {
			t.Errorf("Error location should be 1-based, got %d:%d", parseErr.Line, parseErr.Column)
		}
		if parseErr.Error() == "" {
			t.Error("Error message is empty")
		}
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(ErrLanguageLoad) {
		t.Error("ErrLanguageLoad should be fatal")
	}
	if !IsFatal(&QueryError{Name: "broken"}) {
		t.Error("QueryError should be fatal")
	}
	if IsFatal(ErrParse) {
		t.Error("ErrParse should not be fatal")
	}
	if IsFatal(errors.New("other")) {
		t.Error("Unrelated errors should not be fatal")
	}
}
