package dto

import "time"

// SnapshotResponse describes an exported configuration snapshot
type SnapshotResponse struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	GeneratedAt time.Time `json:"generatedAt"`
}
