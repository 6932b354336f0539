// Package model はドメインモデルを定義する。
package model

import "time"

// ScheduleEntry は個別の予定を表す。
// 複数のエントリが共存し、それぞれが独立に作成・更新・削除される。
type ScheduleEntry struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
