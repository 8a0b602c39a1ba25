package models

type DashboardStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalAlbums      int64 `json:"total_albums"`
	TotalMedia       int64 `json:"total_media"`
	FlaggedMedia     int64 `json:"flagged_media"`
	RecentUploads    int64 `json:"recent_uploads"`
	StorageUsedBytes int64 `json:"storage_used_bytes"`
	ActiveUploaders  int64 `json:"active_uploaders"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type Analytics struct {
	DailyUploads []DailyCount `json:"daily_uploads"`
	MediaByType  []TypeCount  `json:"media_by_type"`
	TotalAlbums  int64        `json:"total_albums"`
	TotalUsers   int64        `json:"total_users"`
}
