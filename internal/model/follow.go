package model

import "time"

// Follow UserID 关注 AuthorID
type Follow struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_follow_user_author;index:idx_follow_user"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AuthorID  uint64 `gorm:"not null;uniqueIndex:uk_follow_user_author;index:idx_follow_author"`
	Author    User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (Follow) TableName() string {
	return "follows"
}
