// Package model はドメインモデルを定義する。
package model

// Session はCookieで運ばれるログインセッションを表す。
// サーバー側には永続化せず、署名付きCookieの値としてのみ存在する。
// 格納するのはOAuthプロバイダーから取得した3フィールドのみで、
// それ以外のプロフィール情報は信用も保存もしない。
type Session struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
