package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Settings 服务全局配置，启动时从环境变量加载一次
type Settings struct {
	ListenAddr string

	// MySQL配置
	MySQLHost     string
	MySQLPort     int
	MySQLUser     string
	MySQLPassword string
	MySQLDB       string

	// LLM服务商配置，provider为ark或openai
	LLMProvider string
	ArkAPIKey   string
	ArkRegion   string
	OpenAIKey   string
	OpenAIBase  string

	// 各阶段模型ID，未单独配置时均使用LLM_MODEL
	AnalyzerModel   string
	WriterModel     string
	ScripterModel   string
	TranslatorModel string

	JWTSecret string

	PollInterval    time.Duration
	DefaultLanguage string
}

// Load 先读取.env文件（如果存在），再从环境变量构建Settings
func Load() *Settings {
	if err := godotenv.Load(); err == nil {
		logrus.Info("已加载.env配置文件")
	}

	s := &Settings{
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		MySQLHost:       getenv("MYSQL_HOST", "localhost"),
		MySQLPort:       getenvInt("MYSQL_PORT", 3306),
		MySQLUser:       getenv("MYSQL_USER", "root"),
		MySQLPassword:   getenv("MYSQL_PASSWORD", "password"),
		MySQLDB:         getenv("MYSQL_DB", "podcast"),
		LLMProvider:     strings.ToLower(getenv("LLM_PROVIDER", "ark")),
		ArkAPIKey:       os.Getenv("ARK_API_KEY"),
		ArkRegion:       getenv("ARK_REGION", "cn-beijing"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBase:      os.Getenv("OPENAI_BASE_URL"),
		JWTSecret:       getenv("JWT_SECRET_KEY", "your-secret-key"),
		PollInterval:    getenvDuration("POLL_INTERVAL", 30*time.Second),
		DefaultLanguage: getenv("DEFAULT_LANGUAGE", "中文"),
	}

	base := getenv("LLM_MODEL", "ep-20250220181854-c8s82")
	s.AnalyzerModel = getenv("LLM_MODEL_ANALYZER", base)
	s.WriterModel = getenv("LLM_MODEL_WRITER", base)
	s.ScripterModel = getenv("LLM_MODEL_SCRIPTER", base)
	s.TranslatorModel = getenv("LLM_MODEL_TRANSLATOR", base)

	return s
}

// MySQLDSN 拼接gorm使用的MySQL连接串
func (s *Settings) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		s.MySQLUser, s.MySQLPassword, s.MySQLHost, s.MySQLPort, s.MySQLDB)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		logrus.Warnf("环境变量%s格式非法，使用默认值%d", key, def)
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		logrus.Warnf("环境变量%s格式非法，使用默认值%s", key, def)
	}
	return def
}
