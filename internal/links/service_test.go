package links

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/myschedule/internal/model"
)

// --- モック定義 ---

type mockLinksRepo struct {
	getLinksFn func(ctx context.Context) (map[string]string, error)
	putLinksFn func(ctx context.Context, links map[string]string) error
}

func (m *mockLinksRepo) GetLinks(ctx context.Context) (map[string]string, error) {
	if m.getLinksFn != nil {
		return m.getLinksFn(ctx)
	}
	return map[string]string{}, nil
}

func (m *mockLinksRepo) PutLinks(ctx context.Context, links map[string]string) error {
	if m.putLinksFn != nil {
		return m.putLinksFn(ctx, links)
	}
	return nil
}

// schemeOnlyGuard はhttpsスキームのみ許可するテスト用実装。
type schemeOnlyGuard struct{}

func (schemeOnlyGuard) NewSafeClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func (schemeOnlyGuard) ValidateLinkURL(rawURL string) error {
	if !strings.HasPrefix(rawURL, "https://") && !strings.HasPrefix(rawURL, "http://") {
		return fmt.Errorf("disallowed scheme: %s", rawURL)
	}
	return nil
}

// --- テスト ---

func TestService_Get_ReturnsEmptyMapWhenAbsent(t *testing.T) {
	svc := NewService(&mockLinksRepo{}, schemeOnlyGuard{})

	links, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if links == nil {
		t.Fatal("expected non-nil map")
	}
	if len(links) != 0 {
		t.Errorf("len(links) = %d, want 0", len(links))
	}
}

func TestService_Put_SavesValidLinks(t *testing.T) {
	var saved map[string]string
	repo := &mockLinksRepo{
		putLinksFn: func(ctx context.Context, links map[string]string) error {
			saved = links
			return nil
		},
	}
	svc := NewService(repo, schemeOnlyGuard{})

	links := map[string]string{
		"lun_1": "https://meet.google.com/abc",
		"mar_2": "http://example.com/doc",
	}
	if err := svc.Put(context.Background(), links); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if len(saved) != 2 {
		t.Fatalf("saved %d links, want 2", len(saved))
	}
	if saved["lun_1"] != "https://meet.google.com/abc" {
		t.Errorf("saved[lun_1] = %q, want %q", saved["lun_1"], "https://meet.google.com/abc")
	}
}

// 1件でも無効なURLがあればストレージに書き込まないことを検証
func TestService_Put_RejectsInvalidURLWithoutPersisting(t *testing.T) {
	repoCalled := false
	repo := &mockLinksRepo{
		putLinksFn: func(ctx context.Context, links map[string]string) error {
			repoCalled = true
			return nil
		},
	}
	svc := NewService(repo, schemeOnlyGuard{})

	err := svc.Put(context.Background(), map[string]string{
		"lun_1": "javascript:alert(1)",
	})

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeInvalidLinkURL {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeInvalidLinkURL)
	}
	if repoCalled {
		t.Error("validation failure must not reach the repository")
	}
}

func TestService_Put_EmptyMapClearsLinks(t *testing.T) {
	var saved map[string]string
	repo := &mockLinksRepo{
		putLinksFn: func(ctx context.Context, links map[string]string) error {
			saved = links
			return nil
		},
	}
	svc := NewService(repo, schemeOnlyGuard{})

	if err := svc.Put(context.Background(), map[string]string{}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if saved == nil || len(saved) != 0 {
		t.Errorf("saved = %v, want empty map", saved)
	}
}

// ストレージ障害は検証エラーと区別されることを検証
func TestService_Put_StorageFaultIsNotValidationError(t *testing.T) {
	repo := &mockLinksRepo{
		putLinksFn: func(ctx context.Context, links map[string]string) error {
			return errors.New("connection refused")
		},
	}
	svc := NewService(repo, schemeOnlyGuard{})

	err := svc.Put(context.Background(), map[string]string{"a": "https://x.example"})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("storage fault should not be an APIError, got %v", apiErr)
	}
}
