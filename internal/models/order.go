package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                       // 主键
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_no"`                       // 订单编号
	UserID        uint           `gorm:"index;not null" json:"user_id"`                              // 用户ID
	AddressID     uint           `gorm:"index;not null" json:"address_id"`                           // 收货地址ID
	Status        string         `gorm:"index;not null" json:"status"`                               // 订单状态
	PaymentMethod string         `gorm:"not null;default:'COD'" json:"payment_method"`               // 支付方式
	TotalAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`  // 订单总额
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	// 关联
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`   // 订单项
	Payment *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"` // 支付记录
	Address *Address    `gorm:"foreignKey:AddressID" json:"address,omitempty"` // 地址快照关联
	User    *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`     // 下单用户
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
