package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ==================== 标识符 ====================

// ErrInvalidID 标识符格式非法
var ErrInvalidID = errors.New("invalid identifier")

// ID 文档标识符，统一以字符串形式存储和序列化
// 外部输入只能通过 ParseID 构造
type ID string

// NewID 生成新的标识符
func NewID() ID {
	return ID(uuid.NewString())
}

// ParseID 校验并构造标识符
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil || len(s) != 36 {
		return "", ErrInvalidID
	}
	return ID(u.String()), nil
}

func (id ID) String() string {
	return string(id)
}

// IsZero 是否为空
func (id ID) IsZero() bool {
	return id == ""
}

// ==================== 基础模型 ====================

// BaseModel 所有集合共用的字段
type BaseModel struct {
	ID        ID        `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate 未指定 ID 时自动生成
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID.IsZero() {
		m.ID = NewID()
	}
	return nil
}

// DefaultCurrency 未指定币种时使用
const DefaultCurrency = "USD"
