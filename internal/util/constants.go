package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeJSON = "application/json"
)

// context keys set by middleware
const (
	ContextUserKey      = "user"
	ContextRequestIDKey = "request_id"
)
