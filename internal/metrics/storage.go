package metrics

import (
	"strings"
	"time"
)

// RecordSnapshotUpload records an object storage upload attempt
func (m *Metrics) RecordSnapshotUpload(duration time.Duration, err error) {
	m.safeExecute("RecordSnapshotUpload", func() {
		status := "success"
		if err != nil {
			status = "error"
			m.SnapshotUploadErrors.WithLabelValues(storageErrorType(err)).Inc()
		}
		m.SnapshotUploadDuration.WithLabelValues(status).Observe(duration.Seconds())
	})
}

// storageErrorType buckets upload failures into coarse categories
func storageErrorType(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection_refused"
	case strings.Contains(msg, "no such host"):
		return "dns_error"
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return "timeout"
	case strings.Contains(msg, "AccessDenied") || strings.Contains(msg, "Forbidden"):
		return "access_denied"
	case strings.Contains(msg, "NoSuchBucket"):
		return "no_such_bucket"
	default:
		return "upload_error"
	}
}
