package poller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"podcastgen/internal/llm"
	"podcastgen/internal/model"
	"podcastgen/internal/pipeline"
	"podcastgen/internal/store"
)

// Poller 周期性地把pending任务推进为播客记录
type Poller struct {
	Store    *store.Store
	Orch     *pipeline.Orchestrator
	Interval time.Duration
}

func New(st *store.Store, orch *pipeline.Orchestrator, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{Store: st, Orch: orch, Interval: interval}
}

// Start 阻塞运行轮询循环，ctx取消后返回
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	logrus.Infof("任务轮询器启动，间隔%s", p.Interval)
	for {
		select {
		case <-ctx.Done():
			logrus.Info("任务轮询器退出")
			return
		case <-ticker.C:
			p.ProcessPending(ctx)
		}
	}
}

// ProcessPending 处理当前全部pending任务。
// 单个任务失败只标记failed，不影响其余任务
func (p *Poller) ProcessPending(ctx context.Context) {
	tasks, err := p.Store.PendingTasks(ctx)
	if err != nil {
		logrus.Errorf("查询待处理任务失败: %v", err)
		return
	}
	for _, task := range tasks {
		if err := p.processOne(ctx, task); err != nil {
			logrus.Errorf("任务%d生成失败: %v", task.ID, err)
			if err := p.Store.UpdateTaskStatus(ctx, task.ID, model.StatusFailed); err != nil {
				logrus.Errorf("任务%d状态更新失败: %v", task.ID, err)
			}
		}
	}
}

func (p *Poller) processOne(ctx context.Context, task model.PodcastTask) error {
	if err := p.Store.UpdateTaskStatus(ctx, task.ID, model.StatusRunning); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	transcript, err := p.generateTranscript(ctx, task)
	if err != nil {
		return err
	}

	if _, err := p.Store.SavePodcast(ctx, &model.Podcast{
		Content:     task.Content,
		VoiceIDs:    task.VoiceIDs,
		ContentType: task.Tags,
		Transcript:  transcript,
		Title:       task.Content,
	}); err != nil {
		return fmt.Errorf("save podcast: %w", err)
	}

	if err := p.Store.UpdateTaskStatus(ctx, task.ID, model.StatusSuccess); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	logrus.Infof("任务%d生成完成", task.ID)
	return nil
}

// generateTranscript 有模型时走完整流水线，未配置时退回占位脚本
func (p *Poller) generateTranscript(ctx context.Context, task model.PodcastTask) (string, error) {
	var voices []string
	if task.VoiceIDs != "" {
		voices = strings.Split(task.VoiceIDs, ",")
	}
	st, err := p.Orch.Run(ctx, pipeline.Request{
		Content:     task.Content,
		ContentType: task.Tags,
		Voices:      voices,
	})
	if errors.Is(err, llm.ErrNotConfigured) {
		return fmt.Sprintf("Transcript for %s", task.Content), nil
	}
	if err != nil {
		return "", err
	}
	return st.FinalScript, nil
}
