package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		segments []string
		str      string
	}{
		{"simple", "/widgets/w1", []string{"widgets", "w1"}, "/widgets/w1"},
		{"no leading slash", "widgets/w1", []string{"widgets", "w1"}, "/widgets/w1"},
		{"trailing slash", "/widgets/", []string{"widgets"}, "/widgets"},
		{"double slash", "//widgets", []string{"widgets"}, "/widgets"},
		{"root", "/", nil, "/"},
		{"empty", "", nil, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePath(tt.input)
			assert.Equal(t, tt.segments, func() []string {
				if len(p.Segments()) == 0 {
					return nil
				}
				return p.Segments()
			}())
			assert.Equal(t, tt.str, p.String())
		})
	}
}

func TestResourcePath_Navigation(t *testing.T) {
	p := ParsePath("/widgets/w1/parts")

	assert.Equal(t, "parts", p.Name())
	assert.Equal(t, "widgets", p.Head())
	assert.Equal(t, "/widgets/w1", p.Parent().String())
	assert.Equal(t, "/widgets/w1/parts/p9", p.Child("p9").String())
	assert.False(t, p.IsRoot())

	root := ParsePath("/")
	assert.True(t, root.IsRoot())
	assert.Equal(t, "", root.Name())
	assert.Equal(t, "", root.Head())
	assert.True(t, root.Parent().IsRoot())
}

func TestResourcePath_HasPrefix(t *testing.T) {
	p := ParsePath("/widgets/w1")

	assert.True(t, p.HasPrefix(ParsePath("/")))
	assert.True(t, p.HasPrefix(ParsePath("/widgets")))
	assert.True(t, p.HasPrefix(ParsePath("/widgets/w1")))
	assert.False(t, p.HasPrefix(ParsePath("/widgets/w2")))
	assert.False(t, p.HasPrefix(ParsePath("/widgets/w1/parts")))
	assert.False(t, p.HasPrefix(ParsePath("/gadgets")))
}

func TestResourcePath_Immutability(t *testing.T) {
	p := ParsePath("/widgets/w1")
	segments := p.Segments()
	segments[0] = "mutated"

	assert.Equal(t, "/widgets/w1", p.String())
}
