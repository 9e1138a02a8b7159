package config

import (
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション設定を表す
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Storage      StorageConfig
	Scheduler    SchedulerConfig
	CandidateAPI CandidateAPIConfig
	Reminder     ReminderConfig
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig はデータベース設定
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig はRedis設定
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig は面接イベントの永続化スロット設定
// Backend は memory / redis / postgres のいずれか
// UseLock は複数プロセスがスロットを共有する場合の書き込み直列化（Redisのみ）
type StorageConfig struct {
	Backend        string
	SlotKey        string
	UseLock        bool
	MigrationsPath string
}

// SchedulerConfig はスケジューリングの既定値設定
type SchedulerConfig struct {
	DefaultTime     string
	DefaultDuration int
	UpcomingLimit   int
}

// CandidateAPIConfig は候補者コラボレーターAPIの設定
type CandidateAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ReminderConfig はリマインダーワーカーの設定
type ReminderConfig struct {
	Enabled  bool
	Interval time.Duration
	Lead     time.Duration
}

// Load は環境変数から設定を読み込む
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "interview_scheduler"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Backend:        getEnv("STORAGE_BACKEND", "memory"),
			SlotKey:        getEnv("STORAGE_SLOT_KEY", "calendarEvents"),
			UseLock:        getBoolEnv("STORAGE_SLOT_LOCK", false),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Scheduler: SchedulerConfig{
			DefaultTime:     getEnv("SCHEDULER_DEFAULT_TIME", "10:00"),
			DefaultDuration: getIntEnv("SCHEDULER_DEFAULT_DURATION", 60),
			UpcomingLimit:   getIntEnv("SCHEDULER_UPCOMING_LIMIT", 5),
		},
		CandidateAPI: CandidateAPIConfig{
			BaseURL: getEnv("CANDIDATE_API_URL", ""),
			Timeout: getDurationEnv("CANDIDATE_API_TIMEOUT", 5*time.Second),
		},
		Reminder: ReminderConfig{
			Enabled:  getBoolEnv("REMINDER_ENABLED", true),
			Interval: getDurationEnv("REMINDER_INTERVAL", 1*time.Minute),
			Lead:     getDurationEnv("REMINDER_LEAD", 30*time.Minute),
		},
	}
}

// DSN はPostgreSQL接続文字列を返す
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
