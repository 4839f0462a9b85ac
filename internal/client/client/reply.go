package client

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/ljpost/internal/client/models"
)

// decodeEventReply picks the postevent/editevent members out of a decoded
// struct. Members that are absent or of an unusable type stay nil.
func decodeEventReply(raw map[string]any) *models.EventReply {
	reply := &models.EventReply{}

	if id, ok := asInt64(raw["itemid"]); ok {
		reply.ItemID = &id
	}
	if anum, ok := asInt64(raw["anum"]); ok {
		reply.Anum = &anum
	}
	if url, ok := asString(raw["url"]); ok {
		reply.URL = &url
	}
	reply.ErrMsg, _ = asString(raw["errmsg"])

	return reply
}

// asInt64 accepts <int> values and integers sent as <string>.
func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
