// Package auth はOAuth認証フローとセッション発行を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/myschedule/internal/model"
	"github.com/hitoshi/myschedule/internal/session"
)

// OAuthUserInfo はOAuthプロバイダーから取得したユーザー情報を表す。
// セッションに格納する3フィールドのみを保持し、それ以外の
// プロフィール情報はここで捨てる。
type OAuthUserInfo struct {
	Email   string
	Name    string
	Picture string
}

// OAuthProvider はOAuth認証プロバイダーのインターフェース。
type OAuthProvider interface {
	// GetLoginURL はOAuth認証URLを生成する。
	GetLoginURL(redirectURI string) string
	// ExchangeCode は認可コードをトークンに交換し、ユーザー情報を取得する。
	ExchangeCode(ctx context.Context, code, redirectURI string) (*OAuthUserInfo, error)
}

// Service は認証に関するビジネスロジックを提供する。
// セッションはサーバー側に保存せず、署名付きCookieトークンとして発行する。
type Service struct {
	oauth OAuthProvider
	codec *session.Codec
}

// NewService はServiceを生成する。
func NewService(oauth OAuthProvider, codec *session.Codec) *Service {
	return &Service{
		oauth: oauth,
		codec: codec,
	}
}

// LoginURL はOAuth認証URLを生成する。
func (s *Service) LoginURL(redirectURI string) string {
	return s.oauth.GetLoginURL(redirectURI)
}

// HandleCallback はOAuthコールバックを処理し、署名済みセッショントークンを発行する。
// プロバイダーのプロフィールからemail・name・pictureのみを取り出してセッションにする。
func (s *Service) HandleCallback(ctx context.Context, code, redirectURI string) (string, error) {
	userInfo, err := s.oauth.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return "", fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	sess := &model.Session{
		Email:   userInfo.Email,
		Name:    userInfo.Name,
		Picture: userInfo.Picture,
	}

	token, err := s.codec.EncodeSession(sess)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}

	slog.Info("user logged in", slog.String("email", sess.Email))
	return token, nil
}

// CurrentSession はCookieトークンからセッションを復元する。
// 署名が無効、形式が不正、トークンが空のいずれの場合もnilを返す。
// 副作用のない問い合わせとして何度でも呼び出せる。
func (s *Service) CurrentSession(token string) *model.Session {
	return s.codec.DecodeSession(token)
}
