package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hitoshi/myschedule/internal/app"
)

func main() {
	// .envファイルがあれば読み込む（ローカル開発用）。
	// 本番環境では環境変数を直接設定するため、ファイルがなくてもエラーにしない。
	_ = godotenv.Load()

	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
