package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Run lifecycle (info)
		"Starting teapotcast":                                "teapotcast を開始します",
		"Negotiated capture format %s":                       "キャプチャ形式 %s でネゴシエートしました",
		"Animation started at %.0f ticks/s, interval %d, %s": "アニメーション開始: %.0f ティック/秒, 間隔 %d, %s",
		"Animation stopped after %d ticks":                   "%d ティック後にアニメーションを停止しました",
		"Frame interval set to %d":                           "フレーム間隔を %d に設定しました",
		"Run finished: %d frames delivered, %d dropped":      "実行完了: %d フレーム配信, %d 破棄",
		"Interrupted, shutting down...":                      "中断されました。シャットダウン中...",
		"Writing frames to %s":                               "フレームを %s に書き出します",
		"Summary saved to %s":                                "サマリーを %s に保存しました",

		// Render loop and capture (debug)
		"Render surface resized to %s":         "描画サーフェスを %s にリサイズしました",
		"Forced redraw ignored, not animating": "アニメーション停止中のため強制再描画を無視しました",
		"Delivered frame %d at %s":             "フレーム %d を %s に配信しました",
		"Surface release: %s":                  "サーフェスの解放: %s",
		"Orientation source stopped: %s":       "姿勢入力が停止しました: %s",

		// Configuration
		"Configuration reloaded from %s": "%s から設定を再読み込みしました",
		"Watching %s for changes":        "%s の変更を監視しています",

		// Warnings
		"Readback failed on tick %d: %s":                  "ティック %d で読み戻しに失敗しました: %s",
		"Sink backpressure, dropped frame %d":             "シンクの背圧によりフレーム %d を破棄しました",
		"Sink refused frame %d: %s":                       "シンクがフレーム %d を拒否しました: %s",
		"Sink stalled on close, dropped %d queued frames": "シンクが停止したため待機中の %d フレームを破棄しました",
		"Orientation source failed: %s":                   "姿勢入力が失敗しました: %s",
		"Cannot recreate surface at %s: %s":               "%s でサーフェスを再作成できません: %s",
		"Ignoring invalid configuration: %s":              "無効な設定を無視します: %s",
		"Configuration watch error: %s":                   "設定の監視でエラーが発生しました: %s",

		// Errors
		"Failed to start animation: %s":          "アニメーションの開始に失敗しました: %s",
		"Failed to negotiate capture format: %s": "キャプチャ形式のネゴシエートに失敗しました: %s",
	})
}
