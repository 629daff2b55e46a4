package model

import "time"

// 任务状态常量
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// PodcastTask 播客生成任务，由后台轮询器处理
type PodcastTask struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	VoiceIDs string `gorm:"size:255;not null" json:"voice_ids"` // 逗号分隔的音色列表
	Tags     string `gorm:"size:255;not null" json:"tags"`
	Status   string `gorm:"size:32;default:pending" json:"status"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
}

func (PodcastTask) TableName() string { return "podcast_task" }

// Podcast 生成完成的播客记录，每次成功生成写入一条
type Podcast struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Content     string    `gorm:"type:text;not null" json:"content"` // 内容摘要
	VoiceIDs    string    `gorm:"size:255;not null" json:"voice_ids"`
	ContentType string    `gorm:"size:255;not null" json:"content_type"`
	Transcript  string    `gorm:"type:text" json:"transcript"`
	Title       string    `gorm:"size:255" json:"title"`
	LikeCount   int       `gorm:"default:0" json:"like_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Podcast) TableName() string { return "podcast" }

// PodcastComment 播客评论
type PodcastComment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PodcastID uint   `gorm:"not null;index" json:"podcast_id"`
	UserID    uint   `gorm:"not null" json:"user_id"`
	Content   string `gorm:"type:text;not null" json:"content"`
}

func (PodcastComment) TableName() string { return "podcast_comment" }

// PodcastLike 点赞记录，(podcast_id, user_id)去重
type PodcastLike struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	PodcastID uint `gorm:"not null;index" json:"podcast_id"`
	UserID    uint `gorm:"not null;index" json:"user_id"`
}

func (PodcastLike) TableName() string { return "podcast_like" }
