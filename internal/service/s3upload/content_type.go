package s3upload

import "strings"

const DefaultContentType = "application/octet-stream"

// contentTypes is checked in order. A name matches when it contains the
// extension anywhere, not only as a suffix: "foo.jsx" is javascript and
// "foo.jsonx" is json.
var contentTypes = []struct {
	ext         string
	contentType string
}{
	{".html", "text/html"},
	{".css", "text/css"},
	{".json", "application/json"},
	{".js", "application/x-javascript"},
	{".png", "image/png"},
	{".jpg", "image/jpg"},
}

// ContentTypeByFile returns the content type for a file name.
func ContentTypeByFile(fileName string) string {
	fn := strings.ToLower(fileName)

	for _, ct := range contentTypes {
		if strings.Contains(fn, ct.ext) {
			return ct.contentType
		}
	}
	return DefaultContentType
}
