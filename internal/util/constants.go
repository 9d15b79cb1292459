package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// upload de currículos
const MimeOctetStream = "application/octet-stream"

var AllowedCVExtensions = []string{".pdf", ".doc", ".docx"}
