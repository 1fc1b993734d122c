package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoCommandsDoc = `shell: bash
mixins:
  - lets.my.yaml
commands:
  test:
    cmd: echo Test
  test2:
    cmd: echo Test2`

func TestListCommands(t *testing.T) {
	a := newTestAnalyzer(t)

	testCases := []struct {
		name     string
		doc      string
		expected []Command
	}{
		{
			name:     "declaration order",
			doc:      twoCommandsDoc,
			expected: []Command{{Name: "test"}, {Name: "test2"}},
		},
		{
			name:     "duplicates are kept",
			doc:      "commands:\n  b:\n    cmd: x\n  a:\n    cmd: y\n  b:\n    cmd: z\n",
			expected: []Command{{Name: "b"}, {Name: "a"}, {Name: "b"}},
		},
		{
			name:     "nested commands keys are ignored",
			doc:      "env:\n  commands:\n    fake:\n      cmd: x\ncommands:\n  real:\n    cmd: y\n",
			expected: []Command{{Name: "real"}},
		},
		{
			name:     "flow mapping bodies are not listed",
			doc:      "commands:\n  test:\n    cmd: x\n  test2: {cmd: y}\n",
			expected: []Command{{Name: "test"}},
		},
		{
			name:     "no commands section",
			doc:      "shell: bash\n",
			expected: nil,
		},
		{
			name:     "empty document",
			doc:      "",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			commands, err := a.ListCommands(tc.doc)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, commands)
		})
	}
}

func TestListCommands_Deterministic(t *testing.T) {
	a := newTestAnalyzer(t)

	first, err := a.ListCommands(twoCommandsDoc)
	require.NoError(t, err)
	second, err := a.ListCommands(twoCommandsDoc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEnclosingCommand(t *testing.T) {
	a := newTestAnalyzer(t)

	testCases := []struct {
		name     string
		doc      string
		line     uint
		char     uint
		expected string
		found    bool
	}{
		{"cmd field of first command", twoCommandsDoc, 5, 4, "test", true},
		{"end of second command", twoCommandsDoc, 7, 19, "test2", true},
		{"commands key line", twoCommandsDoc, 3, 2, "", false},
		{"shell line", twoCommandsDoc, 0, 0, "", false},
		{"inside flow depends", "shell: bash\nmixins:\n  - lets.my.yaml\ncommands:\n  test:\n    cmd: echo Test\n  test2:\n    cmd: echo Test2\n  test3:\n    depends: [test, ]\n    cmd: echo Test3", 9, 20, "test3", true},
		{"block depends placeholder", blockDependsDoc, 9, 7, "test2", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			command, found, err := a.EnclosingCommand(tc.doc, pos(tc.line, tc.char))
			require.NoError(t, err)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.expected, command.Name)
		})
	}
}

func TestMixinFilename(t *testing.T) {
	a := newTestAnalyzer(t)

	testCases := []struct {
		name     string
		line     uint
		char     uint
		expected string
		found    bool
	}{
		{"mixins key line", 1, 0, "", false},
		{"item line start", 2, 0, "lets.my.yaml", true},
		{"item text", 2, 10, "lets.my.yaml", true},
		{"past item end", 2, 15, "lets.my.yaml", true},
		{"commands line", 3, 0, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filename, found, err := a.MixinFilename(mixinsDoc, pos(tc.line, tc.char))
			require.NoError(t, err)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.expected, filename)
		})
	}
}

func TestMixinFilename_AsWritten(t *testing.T) {
	a := newTestAnalyzer(t)
	doc := "mixins:\n  - ./sub/lets.base.yml\n  - \"quoted.yaml\"\n"

	filename, found, err := a.MixinFilename(doc, pos(1, 3))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "./sub/lets.base.yml", filename)

	filename, found, err = a.MixinFilename(doc, pos(2, 3))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `"quoted.yaml"`, filename)
}

func TestListMixins(t *testing.T) {
	a := newTestAnalyzer(t)

	mixins, err := a.ListMixins("mixins:\n  - a.yaml\n  - b/c.yml\ncommands:\n  x:\n    cmd: y\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml", "b/c.yml"}, mixins)

	mixins, err = a.ListMixins(twoCommandsDoc[:11])
	require.NoError(t, err)
	assert.Empty(t, mixins)
}

func TestMixinContextAgreesWithFilename(t *testing.T) {
	a := newTestAnalyzer(t)
	doc := "mixins:\n  - one.yaml\n  - two.yaml\n"

	for line := uint(0); line < 3; line++ {
		for character := uint(0); character < 14; character++ {
			p := pos(line, character)
			context, err := a.Classify(doc, p)
			require.NoError(t, err)
			if context != MixinEntry || line == 0 {
				continue
			}
			filename, found, err := a.MixinFilename(doc, p)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, []string{"", "one.yaml", "two.yaml"}[line], filename)
		}
	}
}
