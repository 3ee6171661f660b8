package model

// Category 工单分类表 — 静态参考数据，对应 categories
type Category struct {
	CategoryID int64  `gorm:"primaryKey;autoIncrement"                json:"category_id"`
	Name       string `gorm:"type:varchar(100);not null;uniqueIndex"  json:"name"`
}

// TableName 指定表名
func (Category) TableName() string { return "categories" }
