package blob

import (
	"path"
	"strings"
)

// objectKey joins the folder and file name into a slash separated key.
func objectKey(folder, fileName string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return fileName
	}
	return path.Join(folder, fileName)
}

func contentTypeOrDefault(contentType string) string {
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}
