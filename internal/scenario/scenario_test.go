package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "answer.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "answer", s.Name, "name falls back to the file name")
	assert.Equal(t, TargetObject, s.Target)
	require.Len(t, s.Members, 3)
	for _, m := range s.Members {
		assert.Equal(t, KindField, m.Kind)
	}

	answer := s.Members[0]
	assert.True(t, answer.HasValue())
	v, err := answer.InitialValue()
	require.NoError(t, err)
	assert.Equal(t, 21, v)
	require.Len(t, answer.Decorators, 2)
	assert.Equal(t, Ref{Name: "multipleOf", Mode: "strict", Args: []any{2}}, answer.Decorators[0])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseKeepsExplicitName(t *testing.T) {
	s, err := Parse([]byte("name: custom\nmembers:\n  - name: a\n"))
	require.NoError(t, err)
	assert.Equal(t, "custom", s.Name)
	assert.False(t, s.Members[0].HasValue())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty document", "", "empty document"},
		{"unknown key", "membres: []\n", "membres"},
		{"bad target", "target: struct\n", `target "struct"`},
		{"bad mode", "mode: lenient\n", `mode "lenient"`},
		{"unnamed member", "members:\n  - value: 1\n", "member 0 has no name"},
		{"duplicate member", "members:\n  - name: a\n  - name: a\n", `member "a" declared twice`},
		{"static on object", "members:\n  - name: a\n    static: true\n", "is static but target"},
		{"unknown kind", "members:\n  - name: a\n    kind: method\n", `unknown kind "method"`},
		{"readonly accessor", "members:\n  - name: a\n    kind: accessor\n    readonly: true\n", "readonly applies to fields"},
		{"unnamed decorator", "members:\n  - name: a\n    decorators:\n      - args: [1]\n", "decorator 0 has no name"},
		{"two ops", "steps:\n  - get: a\n    set: a\n    value: 1\n", "exactly one of"},
		{"no op", "steps:\n  - expect: 1\n", "exactly one of"},
		{"set without value", "steps:\n  - set: a\n", "needs a value"},
		{"owner on object", "steps:\n  - get: a\n    on: static\n", "has only itself"},
		{"keys expecting error", "steps:\n  - keys: true\n    expect_error: any\n", "keys never fails"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, ErrInvalidScenario)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseAllowsStaticInClass(t *testing.T) {
	doc := "target: class\nmembers:\n  - name: a\n    static: true\n  - name: a\nsteps:\n  - get: a\n    on: static\n"
	s, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Len(t, s.Members, 2, "a static and an instance member may share a name")
}

func TestStepOp(t *testing.T) {
	assert.Equal(t, "get", Step{Get: "a"}.Op())
	assert.Equal(t, "set", Step{Set: "a"}.Op())
	assert.Equal(t, "keys", Step{Keys: true}.Op())
	assert.Equal(t, "", Step{}.Op())
	assert.Equal(t, "a", Step{Set: "a"}.Member())
	assert.Equal(t, "", Step{Keys: true}.Member())
}
