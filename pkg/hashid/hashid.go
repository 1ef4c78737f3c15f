package hashid

import (
	"errors"

	hashids "github.com/speps/go-hashids/v2"
)

// Codec 负责评论数字ID与对外短字符串ID之间的双向转换。
// 对外暴露的ID经过混淆，避免直接泄露数据库自增主键。
type Codec struct {
	h *hashids.HashID
}

// NewCodec 使用给定的盐值创建一个新的Codec。
// 同一个盐值保证编码结果在重启后保持稳定。
func NewCodec(salt string) (*Codec, error) {
	if salt == "" {
		return nil, errors.New("hashid盐值不能为空")
	}

	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 8

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &Codec{h: h}, nil
}

// Encode 将一个数据库主键编码为对外的短字符串ID。
func (c *Codec) Encode(id uint) (string, error) {
	return c.h.EncodeInt64([]int64{int64(id)})
}

// Decode 将对外的短字符串ID还原为数据库主键。
// 对于无法解码的输入，返回ok=false而不是错误，便于调用方按“无父评论”处理。
func (c *Codec) Decode(encoded string) (uint, bool) {
	if encoded == "" {
		return 0, false
	}
	ids, err := c.h.DecodeInt64WithError(encoded)
	if err != nil || len(ids) == 0 || ids[0] <= 0 {
		return 0, false
	}
	return uint(ids[0]), true
}
