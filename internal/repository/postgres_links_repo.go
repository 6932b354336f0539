package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// linksDocumentID はリンク集ドキュメントの固定ID。
// デプロイメントごとに1件のみ存在し、全コンポーネントがこの定数を共有する。
const linksDocumentID = "schedule_links"

// PostgresLinksRepo はPostgreSQLを使用したリンク集リポジトリ。
// リンクのマッピングはjsonbカラムに格納する。
type PostgresLinksRepo struct {
	db *sql.DB
}

// NewPostgresLinksRepo はPostgresLinksRepoを生成する。
func NewPostgresLinksRepo(db *sql.DB) *PostgresLinksRepo {
	return &PostgresLinksRepo{db: db}
}

// GetLinks はリンクのマッピングを取得する。
// ドキュメントが未作成の場合は空のマッピングを返す（エラーにしない）。
func (r *PostgresLinksRepo) GetLinks(ctx context.Context) (map[string]string, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT links FROM links_documents WHERE id = $1`,
		linksDocumentID,
	).Scan(&raw)

	if err == sql.ErrNoRows {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find links document: %w", err)
	}

	links := map[string]string{}
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil, fmt.Errorf("failed to decode links document: %w", err)
	}

	return links, nil
}

// PutLinks はリンクのマッピング全体を置き換える。
// ドキュメントが存在しない場合は新規作成する（UPSERT）。
// 同時書き込みはlast-write-winsで解決する。
func (r *PostgresLinksRepo) PutLinks(ctx context.Context, links map[string]string) error {
	raw, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("failed to encode links: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO links_documents (id, links, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET links = EXCLUDED.links, updated_at = EXCLUDED.updated_at`,
		linksDocumentID, raw, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert links document: %w", err)
	}

	return nil
}

// compile-time interface check
var _ LinksRepository = (*PostgresLinksRepo)(nil)
