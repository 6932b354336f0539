// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/myschedule/internal/model"
)

// ScheduleRepository は予定データの永続化インターフェース。
type ScheduleRepository interface {
	// Create は予定を作成する。
	Create(ctx context.Context, entry *model.ScheduleEntry) error

	// FindByID は指定IDの予定を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.ScheduleEntry, error)

	// ListByDate は全予定を日時の昇順で取得する。
	ListByDate(ctx context.Context) ([]*model.ScheduleEntry, error)

	// Update は予定を更新する。
	Update(ctx context.Context, entry *model.ScheduleEntry) error

	// DeleteByID は指定IDの予定を削除する。
	// 対象が存在しなかった場合はfalseを返す。
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// LinksRepository はリンク集ドキュメントの永続化インターフェース。
// ドキュメントは固定IDの1件のみで、書き込みはUPSERTで行う。
type LinksRepository interface {
	// GetLinks はリンクのマッピングを取得する。
	// ドキュメントが未作成の場合は空のマッピングを返す（エラーにしない）。
	GetLinks(ctx context.Context) (map[string]string, error)

	// PutLinks はリンクのマッピング全体を置き換える。
	// ドキュメントが存在しない場合は新規作成する（UPSERT）。
	PutLinks(ctx context.Context, links map[string]string) error
}
