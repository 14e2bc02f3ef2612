package model

import (
	"fmt"
	"time"
)

// Timestamp 在 JSON 中统一输出为 UTC 的 RFC 3339 时间，
// 避免不同数据库驱动返回的时区不一致。
type Timestamp time.Time

// MarshalJSON implements the json.Marshaler interface.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	formatted := fmt.Sprintf("%q", time.Time(t).UTC().Format(time.RFC3339Nano))
	return []byte(formatted), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	parsed, err := time.Parse(`"`+time.RFC3339Nano+`"`, string(data))
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time 返回底层的 time.Time。
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}
