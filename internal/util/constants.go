package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// 文件上传相关常量
const (
	MimeImage       = "image/"
	MimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	MaxAvatarSize = 2 << 20
)

var (
	AllowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
)
