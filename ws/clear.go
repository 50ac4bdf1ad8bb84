package ws

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ScheduleDailyReset 每天 hour 点清理断线的会话，直到 ctx 结束
func (h *Hub) ScheduleDailyReset(ctx context.Context, hour int, loc *time.Location) {
	for {
		duration := durationUntilNext(time.Now().In(loc), hour)
		h.logger.Info("next session reset scheduled", zap.Duration("in", duration))

		timer := time.NewTimer(duration)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		removed := h.clearIdleSessions()
		h.logger.Info("idle sessions cleared", zap.Int("removed", removed))
	}
}

func durationUntilNext(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())

	// 已过今天的重置点，则设置为第二天
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// clearIdleSessions 只移除没有连接的会话，快照仍在存储里按 TTL 过期
func (h *Hub) clearIdleSessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for id, s := range h.active {
		if s.idle() {
			delete(h.active, id)
			removed++
		}
	}
	return removed
}
