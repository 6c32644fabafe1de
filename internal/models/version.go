package models

// LatestVersion describes the newest client build available for download.
type LatestVersion struct {
	Version       string   `json:"version"`
	VersionCode   int      `json:"versionCode"`
	DownloadURL   string   `json:"downloadUrl"`
	ReleaseNotes  []string `json:"releaseNotes"`
	IsForceUpdate bool     `json:"isForceUpdate"`
	MinVersion    string   `json:"minVersion"`
}

// VersionResponse - ответ эндпоинта проверки обновлений.
// Полностью статичен относительно конфигурации.
type VersionResponse struct {
	Success        bool          `json:"success"`
	CurrentVersion string        `json:"currentVersion"`
	LatestVersion  LatestVersion `json:"latestVersion"`
}
