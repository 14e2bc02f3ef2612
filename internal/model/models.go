package model

// All 返回需要迁移的全部模型，父表在前。
func All() []interface{} {
	return []interface{}{&Question{}, &Answer{}}
}
