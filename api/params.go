package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// numericID is an integer field that clients may send either as a JSON number or
// as a numeric string.
type numericID int64

func (n *numericID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*n = numericID(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = numericID(v)
	return nil
}

// userIDParam reads the :userId path segment. It writes the 400 itself and returns
// false when the segment is not a positive integer.
func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, codeInvalidRequest, "userId must be a positive integer")
		return 0, false
	}
	return id, true
}
