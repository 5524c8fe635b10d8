// Package storage archives uploaded documents on local disk or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// FileStore saves an uploaded file under key and returns where it landed.
type FileStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ResumeKey builds a collision-free object key for an uploaded resume.
func ResumeKey(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	name = strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "._")
	if name == "" {
		name = "resume"
	}
	return path.Join("resumes", uuid.NewString(), name)
}
