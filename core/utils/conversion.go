package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt64 converts various types to int64 using explicit type switching.
// Aggregates come back as int64, float64 or []byte depending on the driver.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case nil:
		return 0
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case string:
		return parseInt64(v)
	case []byte:
		return parseInt64(string(v))
	default:
		return parseInt64(fmt.Sprintf("%v", v))
	}
}

// ToInt converts various types to int.
func ToInt(val any) int {
	return int(ToInt64(val))
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, uint, uint64, uint32:
		return ToInt64(v) == 1
	case float64:
		return v == 1
	case float32:
		return v == 1
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	case []byte:
		s := string(v)
		return s == "1" || strings.EqualFold(s, "true")
	default:
		return false
	}
}

// parseInt64 accepts integer and decimal text; decimals are truncated.
func parseInt64(s string) int64 {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}
