package analysis

import (
	"github.com/lets-cli/lets-ls/internal/parser"
)

// Classify returns the context pos falls into. Exactly one context is
// returned for any text, including text that does not parse cleanly.
func (a *Analyzer) Classify(text string, pos parser.Position) (PositionContext, error) {
	tree, err := a.parse(text)
	if err != nil {
		return None, err
	}
	defer tree.Close()

	for _, candidate := range classificationOrder {
		if a.inContext(tree, candidate, pos) {
			a.logger.Debug("classified position", "line", pos.Line, "character", pos.Character, "context", candidate)
			return candidate, nil
		}
	}

	return None, nil
}

func (a *Analyzer) inContext(tree *parser.Tree, kind PositionContext, pos parser.Position) bool {
	switch kind {
	case MixinEntry:
		return a.inMixins(tree, pos)
	case DependsEntry:
		return a.inDepends(tree, pos)
	default:
		return false
	}
}

// inMixins tests the whole "mixins:" pair, key through the last item
func (a *Analyzer) inMixins(tree *parser.Tree, pos parser.Position) bool {
	for _, match := range a.mixins.Matches(tree) {
		key, ok := match.Node(captureKey)
		if !ok || tree.Text(key) != keyMixins {
			continue
		}

		pair := key.Parent()
		if pair == nil || pair.Kind() != "block_mapping_pair" {
			continue
		}

		if parser.WithinNode(pair, pos) {
			return true
		}
	}
	return false
}

// inDepends tests each captured depends value. Block items also accept any
// column on their own line so that an empty "- " placeholder registers.
func (a *Analyzer) inDepends(tree *parser.Tree, pos parser.Position) bool {
	for _, match := range a.depends.Matches(tree) {
		for _, node := range match.Nodes(captureDepends) {
			switch node.Kind() {
			case "block_sequence_item":
				if parser.WithinNode(node, pos) || parser.SameLine(node, pos) {
					return true
				}
			case "flow_sequence", "flow_node":
				if parser.WithinNode(node, pos) {
					return true
				}
			}
		}
	}
	return false
}
