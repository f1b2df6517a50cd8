package sources

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/i474232898/weather-reporter/internal/weather"
)

// File reads a weather log from the local filesystem.
type File struct {
	name string
	path string
}

func NewFile(name, path string) *File {
	return &File{name: name, path: path}
}

func (s *File) Name() string {
	return s.name
}

func (s *File) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.path)
}

// New picks a source for location: http(s) URLs are downloaded, anything
// else is treated as a file path.
func New(name, location string, client *http.Client) weather.Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTP(name, location, client)
	}
	return NewFile(name, location)
}

func (s *File) String() string {
	return s.path
}
