package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, schedule, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeAuthFailed       = "AUTH_FAILED"
	ErrCodeMissingAuthCode  = "MISSING_AUTH_CODE"
	ErrCodeInvalidBody      = "INVALID_BODY"
	ErrCodeInvalidTitle     = "INVALID_TITLE"
	ErrCodeInvalidDate      = "INVALID_DATE"
	ErrCodeScheduleNotFound = "SCHEDULE_NOT_FOUND"
	ErrCodeLinksRequired    = "LINKS_REQUIRED"
	ErrCodeInvalidLinkURL   = "INVALID_LINK_URL"
)

// NewUnauthorizedError は未認証エラーを生成する。
// Cookie欠如と署名不正のどちらでも同じ内容を返す。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証されていません。",
		Category: "auth",
		Action:   "ログインしてから再度お試しください。",
	}
}

// NewAuthFailedError はOAuth認証失敗エラーを生成する。
// 失敗理由の詳細はログのみに記録し、レスポンスには含めない。
func NewAuthFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeAuthFailed,
		Message:  "認証に失敗しました。",
		Category: "auth",
		Action:   "再度ログインをお試しください。",
	}
}

// NewMissingAuthCodeError は認可コード欠如エラーを生成する。
func NewMissingAuthCodeError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingAuthCode,
		Message:  "認可コードがありません。",
		Category: "auth",
		Action:   "ログイン画面からやり直してください。",
	}
}

// NewInvalidBodyError はリクエストボディが解釈できない場合のエラーを生成する。
func NewInvalidBodyError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidBody,
		Message:  "リクエストボディを解釈できません。",
		Category: "validation",
		Action:   "リクエストの形式を確認してください。",
	}
}

// NewInvalidTitleError はタイトルが無効な場合のエラーを生成する。
func NewInvalidTitleError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidTitle,
		Message:  "タイトルは必須です。",
		Category: "validation",
		Action:   "空白以外の文字を含むタイトルを入力してください。",
	}
}

// NewInvalidDateError は日付が無効な場合のエラーを生成する。
func NewInvalidDateError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDate,
		Message:  "日付は必須です。",
		Category: "validation",
		Action:   "有効な日時を指定してください。",
	}
}

// NewScheduleNotFoundError は予定が見つからない場合のエラーを生成する。
func NewScheduleNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeScheduleNotFound,
		Message:  fmt.Sprintf("指定された予定が見つかりません: %s", id),
		Category: "schedule",
		Action:   "予定IDを確認してください。",
	}
}

// NewLinksRequiredError はlinksフィールドが欠如している場合のエラーを生成する。
func NewLinksRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeLinksRequired,
		Message:  "linksフィールドは必須です。",
		Category: "validation",
		Action:   "リンクのマッピングをlinksフィールドに指定してください。",
	}
}

// NewInvalidLinkURLError はリンクURLが無効な場合のエラーを生成する。
func NewInvalidLinkURLError(key string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidLinkURL,
		Message:  fmt.Sprintf("無効なリンクURLです: %s", key),
		Category: "validation",
		Action:   "http:// または https:// で始まる公開URLを指定してください。",
	}
}
