package document

import (
	"context"
	"fmt"
	"strings"
)

// HTTPFileExtractor handles uploaded file sources. Plain-text content types
// are fetched and returned as-is; binary formats (PDF, DOCX, images) are not
// parsed here — a placeholder block naming the file is stored instead, and
// real extraction stays with the external extraction service.
type HTTPFileExtractor struct {
	fetcher Fetcher
}

func NewHTTPFileExtractor(fetcher Fetcher) *HTTPFileExtractor {
	return &HTTPFileExtractor{fetcher: fetcher}
}

func (e *HTTPFileExtractor) ExtractText(ctx context.Context, fileURL, contentType string) (string, error) {
	if strings.HasPrefix(contentType, "text/") {
		status, body, err := e.fetcher.Fetch(ctx, fileURL)
		if err != nil {
			return "", fmt.Errorf("failed to fetch file %s: %w", fileURL, err)
		}
		if status >= 400 {
			return "", fmt.Errorf("fetch of file %s returned status %d", fileURL, status)
		}
		return body, nil
	}

	return fmt.Sprintf("Document file: %s. Content type: %s. The file has been registered and its text will be available once extracted.", fileURL, contentType), nil
}
