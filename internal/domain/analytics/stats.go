package analytics

// Row types scanned from the aggregate queries. Column names follow the
// field names in snake case.

type ViewTotals struct {
	TotalViews     int64 `json:"total_views"`
	TotalCompleted int64 `json:"total_completed"`
}

type VideoViewStat struct {
	VideoID     uint    `json:"video_id"`
	Title       string  `json:"title"`
	Filename    string  `json:"filename"`
	Views       int     `json:"views"`
	ViewCount   int64   `json:"view_count"`
	AvgDuration float64 `json:"avg_duration"`
	Completions int64   `json:"completions"`
}

type AccountViewStat struct {
	AccountID      uint    `json:"account_id"`
	Username       string  `json:"username"`
	WarningLevel   int     `json:"warning_level"`
	VideosWatched  int64   `json:"videos_watched"`
	TotalWatchTime float64 `json:"total_watch_time"`
}

type VideoEmotionStat struct {
	VideoID      uint    `json:"video_id"`
	Title        string  `json:"title"`
	AvgHappy     float64 `json:"avg_happy"`
	AvgSad       float64 `json:"avg_sad"`
	AvgAngry     float64 `json:"avg_angry"`
	AvgSurprised float64 `json:"avg_surprised"`
	AvgNeutral   float64 `json:"avg_neutral"`
}

type AccountVideoEmotionStat struct {
	AccountID      uint    `json:"account_id"`
	Username       string  `json:"username"`
	WarningLevel   int     `json:"warning_level"`
	VideoID        uint    `json:"video_id"`
	Title          string  `json:"title"`
	AvgHappy       float64 `json:"avg_happy"`
	AvgSad         float64 `json:"avg_sad"`
	AvgAngry       float64 `json:"avg_angry"`
	AvgSurprised   float64 `json:"avg_surprised"`
	AvgNeutral     float64 `json:"avg_neutral"`
	TotalReactions int64   `json:"total_reactions"`
}
