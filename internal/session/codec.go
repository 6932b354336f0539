// Package session は署名付きCookieセッションのコーデックを提供する。
//
// セッションはサーバー側に保存せず、HMAC-SHA256で署名したペイロードを
// そのままCookie値として運ぶ。署名の検証に失敗した入力はすべて
// 「セッションなし」として扱い、コーデックの外にエラーを投げない。
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hitoshi/myschedule/internal/model"
)

// Codec はペイロードの署名と検証を行う。
// トークンは base64url(payload) + "." + base64url(HMAC-SHA256(payload)) の
// 形式で、Cookie値としてそのまま利用できる。
type Codec struct {
	secret []byte
}

// NewCodec は指定されたシークレットでCodecを生成する。
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Sign はペイロードに署名し、Cookie用のトークン文字列を返す。
// シークレットが未設定の場合はエラーを返す。ログイン経路では
// この失敗を運用エラーとして扱うこと。
func (c *Codec) Sign(payload []byte) (string, error) {
	if len(c.secret) == 0 {
		return "", fmt.Errorf("cookie secret is not configured")
	}
	sig := c.computeMAC(payload)
	return base64.RawURLEncoding.EncodeToString(payload) + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify はトークンの署名を検証し、埋め込まれたペイロードを返す。
// 形式不正、署名不一致、シークレット未設定のいずれの場合もokはfalseになる。
// 署名比較は定数時間で行う。
func (c *Codec) Verify(token string) (payload []byte, ok bool) {
	if len(c.secret) == 0 || token == "" {
		return nil, false
	}

	dot := strings.LastIndex(token, ".")
	if dot < 0 {
		return nil, false
	}

	// Strictデコードで末尾ビットの改変も不正として扱う
	payload, err := base64.RawURLEncoding.Strict().DecodeString(token[:dot])
	if err != nil {
		return nil, false
	}
	sig, err := base64.RawURLEncoding.Strict().DecodeString(token[dot+1:])
	if err != nil {
		return nil, false
	}

	if !hmac.Equal(sig, c.computeMAC(payload)) {
		return nil, false
	}

	return payload, true
}

// EncodeSession はセッションをJSONにシリアライズして署名する。
func (c *Codec) EncodeSession(sess *model.Session) (string, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}
	return c.Sign(payload)
}

// DecodeSession はトークンを検証し、セッションにデコードする。
// 署名が有効でもJSONとして解釈できないペイロードは
// 「セッションなし」としてnilを返す。
func (c *Codec) DecodeSession(token string) *model.Session {
	payload, ok := c.Verify(token)
	if !ok {
		return nil
	}

	var sess model.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil
	}

	return &sess
}

// computeMAC はペイロードのHMAC-SHA256を計算する。
func (c *Codec) computeMAC(payload []byte) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}
