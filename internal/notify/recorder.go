package notify

import "sync"

// Recorder は送出された通知を記録する Notifier 実装（テスト用）
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewRecorder はRecorderを作成する
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify は通知を記録する
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// All は記録された通知をすべて返す
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Last は最後に記録された通知を返す
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}

// Reset は記録をクリアする
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}

var _ Notifier = (*Recorder)(nil)
