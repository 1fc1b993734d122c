package analysis

// PositionContext is the construct a cursor position falls into
type PositionContext int

const (
	// None means the position is in no recognised construct
	None PositionContext = iota
	// MixinEntry means the position is inside the mixins list
	MixinEntry
	// DependsEntry means the position is inside a depends list
	DependsEntry
)

// classificationOrder is the tie-break between contexts whose constructs
// overlap: the first context that matches wins, so a mixins hit always
// takes precedence over a depends hit.
var classificationOrder = [...]PositionContext{MixinEntry, DependsEntry}

func (c PositionContext) String() string {
	switch c {
	case MixinEntry:
		return "mixin-entry"
	case DependsEntry:
		return "depends-entry"
	default:
		return "none"
	}
}

// MarshalText renders the context by name in JSON and YAML output
func (c PositionContext) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
