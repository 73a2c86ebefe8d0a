package model

import "time"

// TextLimit String() 截断长度
const TextLimit = 15

// Authored 帖子与评论共有的作者和创建时间
type Authored struct {
	AuthorID  uint64    `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"index"`
}

type Post struct {
	Authored

	ID        uint64    `gorm:"primaryKey"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text      string    `gorm:"type:text;not null"`
	GroupID   *uint64   `gorm:"index"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image     string    `gorm:"size:255"`
	UpdatedAt time.Time
}

func (p Post) String() string {
	return truncate(p.Text, TextLimit)
}

type Comment struct {
	Authored

	ID     uint64 `gorm:"primaryKey"`
	Author User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	PostID uint64 `gorm:"not null;index"`
	Post   *Post  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Text   string `gorm:"type:text;not null"`
}

func (c Comment) String() string {
	return truncate(c.Text, TextLimit)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
