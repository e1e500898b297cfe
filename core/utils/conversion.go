package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts a loosely typed API value to an int. JSON decoding yields
// float64 for numbers, and the source inventory frequently returns numbers
// as strings; both convert cleanly. Unparseable values yield 0.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case string:
		i, _ := strconv.Atoi(v)
		return i
	case bool:
		if v {
			return 1
		}
		return 0
	case nil:
		return 0
	default:
		i, _ := strconv.Atoi(fmt.Sprintf("%v", v))
		return i
	}
}

// ToString converts a loosely typed API value to a string. Floats that are
// whole numbers render without a fractional part, matching how the remote
// systems print their ids.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool interprets the source inventory's flag conventions: real booleans,
// numeric 1, and the strings "1"/"true".
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, float64, float32:
		return ToInt(v) == 1
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	default:
		return false
	}
}
