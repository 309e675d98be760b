package app

import "errors"

var (
	// ErrNoSaveFile はセーブファイルが指定されず、自動検出もできなかった場合のエラー
	ErrNoSaveFile = errors.New("セーブファイルが見つかりません。--save フラグで指定してください")

	// ErrNoChartTable は曲メタデータが指定されていない場合のエラー
	ErrNoChartTable = errors.New("曲メタデータが指定されていません。--charts フラグで指定してください")

	// ErrLoadCharts は曲メタデータの読み込みに失敗した場合のエラー
	ErrLoadCharts = errors.New("曲メタデータの読み込みに失敗しました")

	// ErrParseSummary はサマリーの解析に失敗した場合のエラー
	ErrParseSummary = errors.New("サマリーの解析に失敗しました")

	// ErrAggregate はRKSの集計に失敗した場合のエラー
	ErrAggregate = errors.New("RKSの集計に失敗しました")

	// ErrEncodeJSON はJSONへの変換に失敗した場合のエラー
	ErrEncodeJSON = errors.New("JSONへの変換に失敗しました")

	// ErrSaveFile はファイルの保存に失敗した場合のエラー
	ErrSaveFile = errors.New("ファイルの保存に失敗しました")
)
