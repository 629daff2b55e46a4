package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"podcastgen/internal/llm"
	"podcastgen/internal/model"
	"podcastgen/internal/pipeline"
	"podcastgen/internal/store"
)

type scriptedCompleter string

func (s scriptedCompleter) Complete(context.Context, string, string) (string, error) {
	return string(s), nil
}

func testRouter(t *testing.T, stages *llm.Stages) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	st, err := store.New(db)
	require.NoError(t, err)

	r := gin.New()
	NewHandler(st, pipeline.NewOrchestrator(stages, st, "中文")).Register(r)
	return r, st
}

func TestGenerateTaskAndList(t *testing.T) {
	r, _ := testRouter(t, nil)

	w := httptest.NewRecorder()
	body := `{"content":"AI正在改变教育","voice_ids":["主持人"],"tags":"科技"}`
	req := httptest.NewRequest(http.MethodPost, "/podcast/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"task_id":1`)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/podcast/list", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestGenerateTaskRejectsBadBody(t *testing.T) {
	r, _ := testRouter(t, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/podcast/generate", strings.NewReader(`{"content":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateScriptStreamsSSE(t *testing.T) {
	stages := &llm.Stages{
		Analyzer:   scriptedCompleter("precise"),
		Writer:     scriptedCompleter(""),
		Scripter:   scriptedCompleter("第一段。\n\n第二段。"),
		Translator: scriptedCompleter("第一段。\n\n第二段。"),
	}
	r, st := testRouter(t, stages)

	w := httptest.NewRecorder()
	body := `{"content":"AI正在改变教育","language":"中文","voices":["主持人"],"contentType":"科技"}`
	req := httptest.NewRequest(http.MethodPost, "/podcast/generate_script", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))

	// 每个片段一帧SSE
	frames := strings.Split(strings.TrimSpace(w.Body.String()), "\n\n")
	require.GreaterOrEqual(t, len(frames), 3)
	for _, f := range frames {
		assert.True(t, strings.HasPrefix(f, `data: {"text":`), "frame: %s", f)
	}
	assert.Contains(t, w.Body.String(), "播客脚本已保存")

	// 生成结果已落库
	podcasts, err := st.ListPodcasts(context.Background())
	require.NoError(t, err)
	require.Len(t, podcasts, 1)
	assert.Equal(t, "第一段。\n\n第二段。", podcasts[0].Transcript)
}

func TestGenerateScriptFallbackMode(t *testing.T) {
	r, st := testRouter(t, nil)

	w := httptest.NewRecorder()
	body := `{"content":"hello world","language":"中文","voices":[],"contentType":"t"}`
	req := httptest.NewRequest(http.MethodPost, "/podcast/generate_script", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data: {"text":"hello `)
	assert.Contains(t, w.Body.String(), "未配置LLM服务商")

	podcasts, err := st.ListPodcasts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, podcasts)
}

func TestPodcastDetailNotFound(t *testing.T) {
	r, _ := testRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/podcast/detail?podcast_id=42", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "播客不存在")
}

func TestLikeRepeatRejected(t *testing.T) {
	r, st := testRouter(t, nil)
	ctx := context.Background()
	_, err := st.SavePodcast(ctx, &model.Podcast{Content: "c", VoiceIDs: "v", ContentType: "t"})
	require.NoError(t, err)

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/podcast/like", strings.NewReader(`{"podcast_id":1}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do().Code)
	w := do()
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "请勿重复点赞")
}
