package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"podcastgen/internal/pipeline"
	"podcastgen/internal/store"
)

// Handler 持有持久层与流水线编排器，注册/podcast下的全部路由
type Handler struct {
	Store *store.Store
	Orch  *pipeline.Orchestrator
}

func NewHandler(st *store.Store, orch *pipeline.Orchestrator) *Handler {
	return &Handler{Store: st, Orch: orch}
}

// Register 挂载路由
func (h *Handler) Register(r *gin.Engine) {
	g := r.Group("/podcast")
	g.POST("/generate", h.generateTask)
	g.POST("/generate_script", h.generateScript)
	g.GET("/list", h.listTasks)
	g.POST("/recommend", h.recommendTasks)
	g.GET("/generated", h.listGenerated)
	g.GET("/detail", h.podcastDetail)
	g.GET("/comments", h.listComments)
	g.POST("/comment", h.createComment)
	g.POST("/like", h.likePodcast)
	g.DELETE("/comment/:comment_id", h.deleteComment)
}

type generateTaskRequest struct {
	Content  string   `json:"content" binding:"required"`
	VoiceIDs []string `json:"voice_ids" binding:"required"`
	Tags     string   `json:"tags" binding:"required"`
}

// generateTask 创建排队任务，由后台轮询器异步生成
func (h *Handler) generateTask(c *gin.Context) {
	var req generateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "无效的请求格式"})
		return
	}
	task, err := h.Store.CreateTask(c.Request.Context(), req.Content, req.VoiceIDs, req.Tags, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "任务创建失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"task_id": task.ID,
		"status":  task.Status,
		"message": "任务已创建",
	})
}

// generateScript 以SSE流式返回生成的播客脚本，生成结果同步落库
func (h *Handler) generateScript(c *gin.Context) {
	var req pipeline.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "无效的请求格式"})
		return
	}

	requestID := uuid.NewString()
	log := logrus.WithField("request_id", requestID)
	log.Infof("开始生成播客脚本，voices=%d language=%s", len(req.Voices), req.Language)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for seg := range h.Orch.Generate(ctx, req) {
		payload, err := json.Marshal(gin.H{"text": seg.Text})
		if err != nil {
			log.Errorf("序列化输出片段失败: %v", err)
			break
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
			// 客户端断开，停止后续生成
			log.Warnf("客户端断开连接: %v", err)
			break
		}
		c.Writer.Flush()
		if ctx.Err() != nil {
			break
		}
	}
	log.Info("脚本流结束")
}

// listTasks 列出生成任务
func (h *Handler) listTasks(c *gin.Context) {
	tasks, err := h.Store.ListTasks(c.Request.Context(), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "查询失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(tasks), "items": tasks})
}

type recommendRequest struct {
	SceneTag string `json:"scene_tag" binding:"required"`
	Limit    int    `json:"limit"`
}

// recommendTasks 按场景标签推荐
func (h *Handler) recommendTasks(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "无效的请求格式"})
		return
	}
	items, err := h.Store.RecommendTasks(c.Request.Context(), req.SceneTag, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "查询失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// listGenerated 列出生成完成的播客
func (h *Handler) listGenerated(c *gin.Context) {
	podcasts, err := h.Store.ListPodcasts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "查询失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(podcasts), "items": podcasts})
}

// podcastDetail 播客详情
func (h *Handler) podcastDetail(c *gin.Context) {
	podcastID, err := strconv.ParseUint(c.Query("podcast_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "无效的podcast_id"})
		return
	}
	podcast, err := h.Store.GetPodcast(c.Request.Context(), uint(podcastID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "查询失败"})
		return
	}
	if podcast == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "播客不存在"})
		return
	}
	c.JSON(http.StatusOK, podcast)
}

// listComments 分页查询评论
func (h *Handler) listComments(c *gin.Context) {
	podcastID, err := strconv.ParseUint(c.Query("podcast_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "无效的podcast_id"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize > 100 {
		pageSize = 100
	}
	comments, total, err := h.Store.Comments(c.Request.Context(), uint(podcastID), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "查询失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "items": comments})
}

type commentRequest struct {
	PodcastID uint   `json:"podcast_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

// createComment 新增评论
func (h *Handler) createComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "无效的请求格式"})
		return
	}
	comment, err := h.Store.CreateComment(c.Request.Context(), req.PodcastID, currentUserID(c), req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "评论失败"})
		return
	}
	c.JSON(http.StatusOK, comment)
}

type likeRequest struct {
	PodcastID uint `json:"podcast_id" binding:"required"`
}

// likePodcast 点赞，重复点赞返回400
func (h *Handler) likePodcast(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "无效的请求格式"})
		return
	}
	podcast, liked, err := h.Store.LikePodcast(c.Request.Context(), req.PodcastID, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "点赞失败"})
		return
	}
	if podcast == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "播客不存在"})
		return
	}
	if !liked {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "请勿重复点赞"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"podcast_id": podcast.ID, "like_count": podcast.LikeCount})
}

// deleteComment 删除自己的评论
func (h *Handler) deleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "无效的comment_id"})
		return
	}
	ok, err := h.Store.DeleteComment(c.Request.Context(), uint(commentID), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "删除失败"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"detail": "无权删除或评论不存在"})
		return
	}
	c.Status(http.StatusNoContent)
}
