package analysis

import (
	"github.com/lets-cli/lets-ls/internal/parser"
)

// Command is a named entry of the commands section
type Command struct {
	Name string `json:"name" yaml:"name"`
}

// ListCommands returns the commands in declaration order. Duplicate names
// are kept as written.
func (a *Analyzer) ListCommands(text string) ([]Command, error) {
	tree, err := a.parse(text)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var commands []Command
	for _, match := range a.commands.Matches(tree) {
		name, ok := match.Node(captureName)
		if !ok {
			continue
		}
		commands = append(commands, Command{Name: tree.Text(name)})
	}

	return commands, nil
}

// EnclosingCommand returns the command whose body contains pos. The command
// key line and the space between commands belong to no command.
func (a *Analyzer) EnclosingCommand(text string, pos parser.Position) (Command, bool, error) {
	tree, err := a.parse(text)
	if err != nil {
		return Command{}, false, err
	}
	defer tree.Close()

	for _, match := range a.commands.Matches(tree) {
		body, ok := match.Node(captureBody)
		if !ok || !parser.WithinNode(body, pos) {
			continue
		}

		name, ok := match.Node(captureName)
		if !ok {
			continue
		}
		return Command{Name: tree.Text(name)}, true, nil
	}

	return Command{}, false, nil
}

// MixinFilename returns the mixins item on pos's line, exactly as written
func (a *Analyzer) MixinFilename(text string, pos parser.Position) (string, bool, error) {
	tree, err := a.parse(text)
	if err != nil {
		return "", false, err
	}
	defer tree.Close()

	for _, match := range a.mixins.Matches(tree) {
		value, ok := match.Node(captureValue)
		if !ok {
			continue
		}

		parent := value.Parent()
		if parent == nil || parent.Kind() != "block_sequence_item" {
			continue
		}

		if parser.SameLine(value, pos) {
			return tree.Text(value), true, nil
		}
	}

	return "", false, nil
}

// ListMixins returns every mixins item in document order
func (a *Analyzer) ListMixins(text string) ([]string, error) {
	tree, err := a.parse(text)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var mixins []string
	for _, match := range a.mixins.Matches(tree) {
		if value, ok := match.Node(captureValue); ok {
			mixins = append(mixins, tree.Text(value))
		}
	}

	return mixins, nil
}
