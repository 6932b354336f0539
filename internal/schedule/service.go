// Package schedule は予定の管理機能を提供する。
package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/myschedule/internal/model"
	"github.com/hitoshi/myschedule/internal/repository"
	"github.com/hitoshi/myschedule/internal/security"
)

// CreateInput は予定作成の入力。
type CreateInput struct {
	Title       string
	Description string
	Date        time.Time
}

// UpdateInput は予定の部分更新の入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Title       *string
	Description *string
	Date        *time.Time
}

// Service は予定に関するビジネスロジックを提供する。
// 永続化前にタイトル・日時の検証とテキストのサニタイズを行う。
type Service struct {
	repo      repository.ScheduleRepository
	sanitizer security.ContentSanitizerService
}

// NewService はServiceを生成する。
func NewService(repo repository.ScheduleRepository, sanitizer security.ContentSanitizerService) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
	}
}

// Create は予定を検証して作成する。
// タイトルがトリム後に空、または日時が未指定の場合は検証エラーを返し、
// ストレージには書き込まない。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.ScheduleEntry, error) {
	title := strings.TrimSpace(s.sanitizer.Sanitize(input.Title))
	if title == "" {
		return nil, model.NewInvalidTitleError()
	}
	if input.Date.IsZero() {
		return nil, model.NewInvalidDateError()
	}

	now := time.Now()
	entry := &model.ScheduleEntry{
		ID:          uuid.New().String(),
		Title:       title,
		Description: s.sanitizer.Sanitize(input.Description),
		Date:        input.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	return entry, nil
}

// List は全予定を日時の昇順で返す。
func (s *Service) List(ctx context.Context) ([]*model.ScheduleEntry, error) {
	entries, err := s.repo.ListByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return entries, nil
}

// Get は指定IDの予定を返す。見つからない場合は未検出エラーを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	if entry == nil {
		return nil, model.NewScheduleNotFoundError(id)
	}
	return entry, nil
}

// Update は指定IDの予定を部分更新する。
// 指定されたフィールドのみを変更し、変更後の値を検証してから永続化する。
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*model.ScheduleEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	if entry == nil {
		return nil, model.NewScheduleNotFoundError(id)
	}

	if input.Title != nil {
		entry.Title = strings.TrimSpace(s.sanitizer.Sanitize(*input.Title))
	}
	if input.Description != nil {
		entry.Description = s.sanitizer.Sanitize(*input.Description)
	}
	if input.Date != nil {
		entry.Date = *input.Date
	}

	if entry.Title == "" {
		return nil, model.NewInvalidTitleError()
	}
	if entry.Date.IsZero() {
		return nil, model.NewInvalidDateError()
	}

	entry.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}

	return entry, nil
}

// Delete は指定IDの予定を削除する。見つからない場合は未検出エラーを返す。
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if !deleted {
		return model.NewScheduleNotFoundError(id)
	}
	return nil
}
