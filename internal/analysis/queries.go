package analysis

// Capture names shared by the queries below
const (
	captureKey     = "key"
	captureValue   = "value"
	captureDepends = "depends"
	captureName    = "name"
	captureBody    = "body"
)

// Section and field names of a lets configuration
const (
	keyMixins   = "mixins"
	keyDepends  = "depends"
	keyCommands = "commands"
)

// mixinsQuery matches every scalar item of a block-style mixins list, one
// match per item.
const mixinsQuery = `
(block_mapping_pair
	key: (flow_node) @key
	value: (block_node
		(block_sequence
			(block_sequence_item
				(flow_node) @value)))
	(#eq? @key "mixins"))
`

// dependsQuery accepts the three shapes a depends list is written in:
// a flow sequence, a flow sequence holding a plain scalar, and the items of
// a block sequence (including empty "-" placeholders).
const dependsQuery = `
(block_mapping_pair
	key: (flow_node) @key
	value: [
		(flow_node (flow_sequence)) @depends
		(flow_node (flow_sequence (flow_node (plain_scalar (string_scalar))))) @depends
		(block_node (block_sequence (block_sequence_item) @depends))
	]
	(#eq? @key "depends"))
`

// commandsQuery matches each entry of the top-level commands mapping whose
// body is a block node, capturing the entry name and body. Entries written
// as a flow mapping (`test: {cmd: x}`) have a flow_node body and are not
// listed.
const commandsQuery = `
(stream
	(document
		(block_node
			(block_mapping
				(block_mapping_pair
					key: (flow_node (plain_scalar (string_scalar) @section))
					value: (block_node
						(block_mapping
							(block_mapping_pair
								key: (flow_node (plain_scalar (string_scalar) @name))
								value: (block_node) @body))))))
	(#eq? @section "commands")))
`
