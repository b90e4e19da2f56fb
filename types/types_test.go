package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestType_Validate(t *testing.T) {
	for _, rt := range []RequestType{RequestCreate, RequestRead, RequestUpdate, RequestDelete} {
		assert.NoError(t, rt.Validate(), rt)
	}
	assert.Error(t, RequestType("PATCH").Validate())
	assert.Error(t, RequestType("").Validate())
}

func TestRequestType_ExpectedResponse(t *testing.T) {
	assert.Equal(t, ResponseCreated, RequestCreate.ExpectedResponse())
	assert.Equal(t, ResponseRead, RequestRead.ExpectedResponse())
	assert.Equal(t, ResponseUpdated, RequestUpdate.ExpectedResponse())
	assert.Equal(t, ResponseDeleted, RequestDelete.ExpectedResponse())
}

func TestRequestType_NotSupportedKind(t *testing.T) {
	assert.Equal(t, ErrorCreateNotSupported, RequestCreate.NotSupportedKind())
	assert.Equal(t, ErrorReadNotSupported, RequestRead.NotSupportedKind())
	assert.Equal(t, ErrorUpdateNotSupported, RequestUpdate.NotSupportedKind())
	assert.Equal(t, ErrorDeleteNotSupported, RequestDelete.NotSupportedKind())
}

func TestErrorKinds_Closed(t *testing.T) {
	kinds := ErrorKinds()
	require.Len(t, kinds, 9)

	seen := map[ErrorKind]bool{}
	for _, k := range kinds {
		assert.NoError(t, k.Validate(), k)
		assert.False(t, seen[k], "duplicate kind %s", k)
		seen[k] = true
	}
	assert.Error(t, ErrorKind("TEAPOT").Validate())
}

func TestNewRequest_FreshIdentity(t *testing.T) {
	a := NewRequest(RequestRead, "/widgets/w1", nil, nil)
	b := NewRequest(RequestRead, "/widgets/w1", nil, nil)

	// Identity is per-submission, never per-content.
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, a.Path(), b.Path())
	assert.NotNil(t, a.Context())
}

func TestResourceResponse_Tagging(t *testing.T) {
	req := NewRequest(RequestRead, "/widgets/w1", nil, nil)

	ok := NewResponse(req, ResponseRead, nil)
	assert.False(t, ok.IsError())
	assert.Equal(t, req.ID(), ok.InReplyTo())
	assert.Same(t, req, ok.Request())

	bad := NewErrorResponse(req, ErrorNoSuchResource, "gone", nil)
	assert.True(t, bad.IsError())
	assert.Equal(t, ErrorNoSuchResource, bad.ErrorKind())
	assert.Equal(t, "gone", bad.Message())
	assert.Equal(t, req.ID(), bad.InReplyTo())
}

func TestResourceState(t *testing.T) {
	s := NewState("w1")
	s.Put("color", "blue")
	s.Put("size", 3)
	s.Put("color", "red") // overwrite keeps position

	assert.Equal(t, "w1", s.ID())
	assert.Equal(t, []string{"color", "size"}, s.PropertyNames())

	v, ok := s.Get("color")
	require.True(t, ok)
	assert.Equal(t, "red", v)

	_, ok = s.Get("weight")
	assert.False(t, ok)
}

func TestResourceState_Clone(t *testing.T) {
	s := NewState("")
	s.Put("color", "blue")
	s.AddMember(NewState("p1"))

	c := s.Clone()
	c.SetID("w1")
	c.Put("size", 3)
	c.AddMember(NewState("p2"))

	assert.Equal(t, "", s.ID())
	assert.Equal(t, []string{"color"}, s.PropertyNames())
	assert.Len(t, s.Members(), 1)

	assert.Equal(t, "w1", c.ID())
	assert.Equal(t, []string{"color", "size"}, c.PropertyNames())
	assert.Len(t, c.Members(), 2)

	var nilState *ResourceState
	assert.Nil(t, nilState.Clone())
}

func TestResourceState_MarshalJSON(t *testing.T) {
	s := NewState("w1")
	s.Put("color", "blue")

	member := NewState("p1")
	member.Put("n", 1)
	s.AddMember(member)

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"w1","color":"blue","members":[{"id":"p1","n":1}]}`, string(data))
}

func TestRequestContext_ReturnsField(t *testing.T) {
	rc := NewRequestContext(nil).WithReturnFields(FieldMembers)
	assert.True(t, rc.ReturnsField(FieldMembers))
	assert.False(t, rc.ReturnsField("other"))

	all := NewRequestContext(nil).WithReturnFields(FieldAll)
	assert.True(t, all.ReturnsField("anything"))

	none := NewRequestContext(nil)
	assert.False(t, none.ReturnsField(FieldMembers))
}

func TestRequestContext_Attributes(t *testing.T) {
	rc := NewRequestContext(nil)
	rc.SetAttribute("principal", "alice")

	v, ok := rc.Attribute("principal")
	require.True(t, ok)
	assert.Equal(t, "alice", v)

	_, ok = rc.Attribute("missing")
	assert.False(t, ok)
}
