package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liverr "github.com/rohankumardubey/liveoak/errors"
	"github.com/rohankumardubey/liveoak/tree"
	"github.com/rohankumardubey/liveoak/types"
)

// failingResource reports an error while being read.
type failingResource struct {
	err error
}

func (f *failingResource) ID() string { return "broken" }

func (f *failingResource) ReadProperties(_ *types.RequestContext, _ types.PropertySink) error {
	return f.err
}

// linkedResource exposes another resource as a property value.
type linkedResource struct {
	target types.Resource
}

func (l *linkedResource) ID() string { return "link" }

func (l *linkedResource) ReadProperties(_ *types.RequestContext, sink types.PropertySink) error {
	sink.Accept("target", l.target)
	return nil
}

func TestStateEncoder_Properties(t *testing.T) {
	root := tree.NewRoot()
	root.SetProperty("color", "blue")
	root.SetProperty("size", 3)

	state, err := NewStateEncoder().Encode(types.NewRequestContext(nil), root)
	require.NoError(t, err)

	v, ok := state.Get("color")
	require.True(t, ok)
	assert.Equal(t, "blue", v)
	v, ok = state.Get("size")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestStateEncoder_NilResource(t *testing.T) {
	_, err := NewStateEncoder().Encode(types.NewRequestContext(nil), nil)
	require.Error(t, err)

	var pe *liverr.ProcessingError
	assert.True(t, errors.As(err, &pe))
}

func TestStateEncoder_ReadFailurePropagates(t *testing.T) {
	boom := errors.New("read exploded")
	_, err := NewStateEncoder().Encode(types.NewRequestContext(nil), &failingResource{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestStateEncoder_NestedResourceProperty(t *testing.T) {
	inner := tree.NewRoot()
	inner.SetProperty("depth", 1)

	state, err := NewStateEncoder().Encode(types.NewRequestContext(nil), &linkedResource{target: inner})
	require.NoError(t, err)

	v, ok := state.Get("target")
	require.True(t, ok)
	nested, ok := v.(*types.ResourceState)
	require.True(t, ok, "nested resource should be encoded, not passed through live")

	dv, ok := nested.Get("depth")
	require.True(t, ok)
	assert.Equal(t, 1, dv)
}

func TestStateEncoder_MemberExpansion(t *testing.T) {
	root := tree.NewRoot()
	for _, id := range []string{"a", "b"} {
		s := types.NewState(id)
		s.Put("n", id)
		_, err := root.CreateMember(nil, s)
		require.NoError(t, err)
	}

	// Without the members field requested, no expansion happens.
	plain, err := NewStateEncoder().Encode(types.NewRequestContext(nil), root)
	require.NoError(t, err)
	assert.Empty(t, plain.Members())

	expanded, err := NewStateEncoder().Encode(
		types.NewRequestContext(nil).WithReturnFields(types.FieldMembers), root)
	require.NoError(t, err)

	members := expanded.Members()
	require.Len(t, members, 2)
	assert.Equal(t, "a", members[0].ID())
	assert.Equal(t, "b", members[1].ID())
}
