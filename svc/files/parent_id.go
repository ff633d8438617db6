package files

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ParentID identifies the folder a file lives in. The zero value is the
// root. On the wire the root is the number 0 and any other parent is the
// folder id as a string.
type ParentID string

// Root is the parent of top level files.
const Root ParentID = ""

func (p ParentID) IsRoot() bool {
	return p == Root
}

func (p ParentID) MarshalJSON() ([]byte, error) {
	if p.IsRoot() {
		return []byte("0"), nil
	}
	return json.Marshal(string(p))
}

// UnmarshalJSON accepts null, 0, "0" and "" as the root. Other numbers are
// kept as their decimal text and fail the parent lookup later.
func (p *ParentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Root
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ParseParentID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = ParseParentID(n.String())
	return nil
}

// ParseParentID converts query or body text to a ParentID.
func ParseParentID(s string) ParentID {
	if s == "" {
		return Root
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && n == 0 {
		return Root
	}
	return ParentID(s)
}
