package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_FixedFields(t *testing.T) {
	e := NewEvent("alice")

	want := Event{
		Username:    "alice",
		AuthMethod:  "challenge",
		Security:    SecurityPublic,
		LineEndings: "unix",
		Ver:         1,
	}
	assert.Empty(t, cmp.Diff(want, e))
	assert.False(t, e.IsEdit())
	assert.Equal(t, "", e.TagList())
}

func TestEvent_CloneIsDeep(t *testing.T) {
	id := int64(5)
	e := NewEvent("alice")
	e.ItemID = &id
	e.Props = map[string]any{"taglist": "a,b"}

	c := e.Clone()
	*c.ItemID = 6
	c.Props["taglist"] = "x"

	require.Equal(t, int64(5), *e.ItemID)
	require.Equal(t, "a,b", e.TagList())
	require.True(t, c.IsEdit())
}

func TestEventReply_Complete(t *testing.T) {
	id, anum := int64(100), int64(7)
	url := "http://x/100.html"

	var nilReply *EventReply
	assert.False(t, nilReply.Complete())
	assert.False(t, (&EventReply{ItemID: &id, Anum: &anum}).Complete())
	assert.True(t, (&EventReply{ItemID: &id, URL: &url, Anum: &anum}).Complete())
}
