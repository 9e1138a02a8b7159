package notify

import (
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-interview-scheduler/internal/pkg/logger"
)

// Level は通知の種別を表す
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// DefaultDuration は通知の既定表示時間
const DefaultDuration = 3 * time.Second

// Notification はユーザー向け通知を表す
type Notification struct {
	Level    Level         `json:"level"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
}

// Notifier はユーザー向け通知の送出インターフェース
type Notifier interface {
	Notify(n Notification)
}

// Success は成功通知を組み立てる
func Success(message string) Notification {
	return Notification{Level: LevelSuccess, Message: message, Duration: DefaultDuration}
}

// Error はエラー通知を組み立てる
func Error(message string) Notification {
	return Notification{Level: LevelError, Message: message, Duration: DefaultDuration}
}

// Info は情報通知を組み立てる
func Info(message string) Notification {
	return Notification{Level: LevelInfo, Message: message, Duration: DefaultDuration}
}

// LogNotifier は通知を構造化ログとして出力する Notifier 実装
type LogNotifier struct{}

// NewLogNotifier はLogNotifierを作成する
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify は通知をログに出力する
func (n *LogNotifier) Notify(notification Notification) {
	fields := []zap.Field{
		zap.String("level", string(notification.Level)),
		zap.Duration("duration", notification.Duration),
	}
	switch notification.Level {
	case LevelError:
		logger.Warn(notification.Message, fields...)
	default:
		logger.Info(notification.Message, fields...)
	}
}

var _ Notifier = (*LogNotifier)(nil)
