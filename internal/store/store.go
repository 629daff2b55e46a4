package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"podcastgen/internal/model"
)

// Store 基于gorm的持久层，对应任务、播客、评论、点赞四张表
type Store struct {
	db *gorm.DB
}

// Open 连接MySQL并自动建表
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return New(db)
}

// New 在已有连接上构建Store，测试时传入sqlite连接
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(
		&model.PodcastTask{},
		&model.Podcast{},
		&model.PodcastComment{},
		&model.PodcastLike{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// CreateTask 新建一条pending状态的生成任务
func (s *Store) CreateTask(ctx context.Context, content string, voiceIDs []string, tags string, userID uint) (*model.PodcastTask, error) {
	task := &model.PodcastTask{
		Content:  content,
		VoiceIDs: strings.Join(voiceIDs, ","),
		Tags:     tags,
		Status:   model.StatusPending,
		UserID:   userID,
	}
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks 列出任务，userID非nil时只看该用户的
func (s *Store) ListTasks(ctx context.Context, userID *uint) ([]model.PodcastTask, error) {
	q := s.db.WithContext(ctx).Model(&model.PodcastTask{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var tasks []model.PodcastTask
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// RecommendTasks 按场景标签模糊匹配，最新优先
func (s *Store) RecommendTasks(ctx context.Context, sceneTag string, limit int) ([]model.PodcastTask, error) {
	if limit <= 0 {
		limit = 10
	}
	var tasks []model.PodcastTask
	err := s.db.WithContext(ctx).
		Where("tags LIKE ?", "%"+sceneTag+"%").
		Order("id DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// PendingTasks 取出所有待处理任务，供轮询器消费
func (s *Store) PendingTasks(ctx context.Context) ([]model.PodcastTask, error) {
	var tasks []model.PodcastTask
	err := s.db.WithContext(ctx).
		Where("status = ?", model.StatusPending).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskStatus 按ID更新任务状态，可重复执行
func (s *Store) UpdateTaskStatus(ctx context.Context, taskID uint, status string) error {
	return s.db.WithContext(ctx).
		Model(&model.PodcastTask{}).
		Where("id = ?", taskID).
		Update("status", status).Error
}

// SavePodcast 写入一条生成完成的播客记录，实现pipeline.Sink
func (s *Store) SavePodcast(ctx context.Context, p *model.Podcast) (uint, error) {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

// ListPodcasts 列出全部已生成播客
func (s *Store) ListPodcasts(ctx context.Context) ([]model.Podcast, error) {
	var podcasts []model.Podcast
	if err := s.db.WithContext(ctx).Find(&podcasts).Error; err != nil {
		return nil, err
	}
	return podcasts, nil
}

// GetPodcast 查询播客详情，不存在时返回(nil, nil)
func (s *Store) GetPodcast(ctx context.Context, podcastID uint) (*model.Podcast, error) {
	var p model.Podcast
	err := s.db.WithContext(ctx).First(&p, podcastID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Comments 分页查询评论，倒序，返回评论列表和总数
func (s *Store) Comments(ctx context.Context, podcastID uint, page, pageSize int) ([]model.PodcastComment, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	var total int64
	if err := s.db.WithContext(ctx).
		Model(&model.PodcastComment{}).
		Where("podcast_id = ?", podcastID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var comments []model.PodcastComment
	err := s.db.WithContext(ctx).
		Where("podcast_id = ?", podcastID).
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// CreateComment 新增评论
func (s *Store) CreateComment(ctx context.Context, podcastID, userID uint, content string) (*model.PodcastComment, error) {
	comment := &model.PodcastComment{
		PodcastID: podcastID,
		UserID:    userID,
		Content:   content,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment 删除评论，仅评论所有者可删；无权或不存在时返回false
func (s *Store) DeleteComment(ctx context.Context, commentID, userID uint) (bool, error) {
	var comment model.PodcastComment
	err := s.db.WithContext(ctx).First(&comment, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if comment.UserID != userID {
		return false, nil
	}
	if err := s.db.WithContext(ctx).Delete(&model.PodcastComment{}, commentID).Error; err != nil {
		return false, err
	}
	return true, nil
}

// LikePodcast 点赞。重复点赞不计数，liked返回false；
// 播客不存在时返回(nil, false, nil)
func (s *Store) LikePodcast(ctx context.Context, podcastID, userID uint) (*model.Podcast, bool, error) {
	podcast, err := s.GetPodcast(ctx, podcastID)
	if err != nil || podcast == nil {
		return nil, false, err
	}

	var existing model.PodcastLike
	err = s.db.WithContext(ctx).
		Where("podcast_id = ? AND user_id = ?", podcastID, userID).
		First(&existing).Error
	if err == nil {
		return podcast, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err := s.db.WithContext(ctx).Create(&model.PodcastLike{PodcastID: podcastID, UserID: userID}).Error; err != nil {
		return nil, false, err
	}
	if err := s.db.WithContext(ctx).
		Model(&model.Podcast{}).
		Where("id = ?", podcastID).
		Update("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
		return nil, false, err
	}

	podcast, err = s.GetPodcast(ctx, podcastID)
	if err != nil {
		return nil, false, err
	}
	return podcast, true, nil
}
