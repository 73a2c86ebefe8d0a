package model

type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"type:text"`
}

// TableName groups 是 mysql 保留字
func (Group) TableName() string {
	return "post_groups"
}

func (g Group) String() string {
	return g.Title
}
