// Package main provides localization for the teapotcast CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Timing":        "タイミング",
		"Surface":       "描画サーフェス",
		"Capture":       "キャプチャ",
		"Output":        "出力先",
		"Scene":         "シーン",
		"Logging":       "ログ",

		// Commands
		"Render an animated teapot as a synthetic video source": "アニメーションするティーポットを合成映像ソースとして描画",
		"Produce frames for a duration":                         "指定時間フレームを生成",
		"Print the negotiated capture format":                   "ネゴシエートされたキャプチャ形式を表示",

		// Flags
		"YAML configuration file":                                                "YAML設定ファイル",
		"Base ticks per second":                                                  "1秒あたりの基本ティック数",
		"Host width in points":                                                   "ホストの幅（ポイント）",
		"Host height in points":                                                  "ホストの高さ（ポイント）",
		"Pixels per point":                                                       "1ポイントあたりのピクセル数",
		"Offered pixel formats, preferred first (rgba, bgra, argb)":              "提示するピクセル形式、優先順（rgba, bgra, argb）",
		"Offered resolutions, preferred first (e.g. 640x480)":                    "提示する解像度、優先順（例: 640x480）",
		"Directory for frame images (frames are discarded when empty)":           "フレーム画像の出力ディレクトリ（空の場合は破棄）",
		"Frame image format (png, jpeg)":                                         "フレーム画像形式（png, jpeg）",
		"Log level (debug, info, warn, error)":                                   "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                                "全てのログ出力を抑制",
		"Run time, 0 runs until interrupted":                                     "実行時間、0の場合は中断まで実行",
		"Ticks per produced frame":                                               "1フレームあたりのティック数",
		"Write one frame image out of every N":                                   "Nフレームごとに1枚の画像を書き出す",
		"Write a Markdown run summary to this path":                              "Markdown形式の実行サマリーを書き出すパス",
		"Disable the synthetic orientation source":                               "合成姿勢ソースを無効化",
		"Apply frame_interval changes from the configuration file while running": "実行中に設定ファイルの frame_interval の変更を反映",
	})
}
