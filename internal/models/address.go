package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货地址（仅归属用户可见）
type Address struct {
	ID         uint           `gorm:"primarykey" json:"id"`                    // 主键
	UserID     uint           `gorm:"not null;index" json:"user_id"`           // 用户ID
	FullName   string         `gorm:"not null" json:"full_name"`               // 收件人
	Phone      string         `gorm:"type:varchar(32)" json:"phone"`           // 电话
	Line1      string         `gorm:"not null" json:"line1"`                   // 地址行1
	Line2      string         `json:"line2"`                                   // 地址行2
	City       string         `gorm:"not null" json:"city"`                    // 城市
	State      string         `json:"state"`                                   // 省/州
	PostalCode string         `gorm:"type:varchar(20)" json:"postal_code"`     // 邮编
	Country    string         `gorm:"not null" json:"country"`                 // 国家
	IsDefault  bool           `gorm:"not null;default:false" json:"is_default"` // 是否默认地址
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
