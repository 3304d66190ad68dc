package model

import "time"

// Follow is a directed edge: the follower's timeline includes the followed
// user's posts. The pair is the primary key, so duplicate edges cannot exist.
// Every user carries a self-edge so their own posts land in their timeline.
type Follow struct {
	FollowerID uint64 `gorm:"primaryKey;autoIncrement:false"`
	FollowedID uint64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt  time.Time
}

func (Follow) TableName() string { return "follows" }

// FollowOutbox records follow/unfollow events inside the mutating
// transaction; a relayer drains pending rows to kafka.
type FollowOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // follow / unfollow
	Follower  uint64 `gorm:"not null"`
	Followed  uint64 `gorm:"not null"`
	Payload   string `gorm:"type:text;not null"`
	Status    int8   `gorm:"not null;default:0"` // 0=pending 1=sent 2=failed
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FollowOutbox) TableName() string { return "follow_outbox" }
