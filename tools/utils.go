package tools

import (
	"encoding/json"

	"github.com/dustin/go-humanize"
)

func FmtJSONString(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "marshal data fail"
	}
	return string(data)
}

// Count with thousands separators, e.g. 12,345
func FmtCount(n int) string {
	return humanize.Comma(int64(n))
}
