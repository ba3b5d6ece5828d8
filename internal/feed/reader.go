package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReaderSource decodes a JSON array of raw records from any reader. Used for
// the stdin mode, where an upstream job pipes the batch in.
type ReaderSource struct {
	R io.Reader
}

func (s ReaderSource) Fetch(ctx context.Context) ([]RawIncident, error) {
	var out []RawIncident
	if err := json.NewDecoder(s.R).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode incidents: %w", err)
	}
	return out, nil
}

// FileSource reads the batch from a file path; "-" means stdin.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]RawIncident, error) {
	if s.Path == "-" {
		return ReaderSource{R: os.Stdin}.Fetch(ctx)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open incidents file: %w", err)
	}
	defer f.Close()
	return ReaderSource{R: f}.Fetch(ctx)
}
