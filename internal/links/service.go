// Package links はリンク集ドキュメントの管理機能を提供する。
package links

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/myschedule/internal/model"
	"github.com/hitoshi/myschedule/internal/repository"
	"github.com/hitoshi/myschedule/internal/security"
)

// Service はリンク集に関するビジネスロジックを提供する。
// 保存前に各URLの検証を行う。
type Service struct {
	repo  repository.LinksRepository
	guard security.LinkGuardService
}

// NewService はServiceを生成する。
func NewService(repo repository.LinksRepository, guard security.LinkGuardService) *Service {
	return &Service{
		repo:  repo,
		guard: guard,
	}
}

// Get はリンクのマッピングを返す。
// ドキュメントが未作成の場合は空のマッピングを返す。
func (s *Service) Get(ctx context.Context) (map[string]string, error) {
	links, err := s.repo.GetLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}
	return links, nil
}

// Put はリンクのマッピング全体を置き換える。
// すべての値が公開URLとして有効な場合のみ保存する。
// 1件でも無効なURLがあれば検証エラーを返し、ストレージには書き込まない。
func (s *Service) Put(ctx context.Context, links map[string]string) error {
	for key, rawURL := range links {
		if err := s.guard.ValidateLinkURL(rawURL); err != nil {
			slog.Warn("rejected link URL",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			return model.NewInvalidLinkURLError(key)
		}
	}

	if err := s.repo.PutLinks(ctx, links); err != nil {
		return fmt.Errorf("failed to put links: %w", err)
	}

	slog.Info("links document updated", slog.Int("link_count", len(links)))
	return nil
}
