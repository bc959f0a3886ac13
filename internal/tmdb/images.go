package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ImageURL constructs the full image URL from a poster path.
func (c *Client) ImageURL(posterPath string) string {
	return c.imageBaseURL + posterPath
}

// PosterFileName is the file a poster for the given title is saved as.
func PosterFileName(mediaType string, tmdbID int) string {
	return fmt.Sprintf("%s-%d.jpg", mediaType, tmdbID)
}

// DownloadPoster saves the poster of a movie or TV show into dir, scaled down
// to maxWidth. It returns the written path.
func (c *Client) DownloadPoster(ctx context.Context, tmdbID int, mediaType, dir string, maxWidth int) (string, error) {
	if err := ValidateMediaType(mediaType); err != nil {
		return "", err
	}

	var details map[string]any
	var err error
	if mediaType == MediaMovie {
		details, _, err = c.CachedGetFullMovieDetails(ctx, tmdbID, false)
	} else {
		details, _, err = c.CachedGetFullTVDetails(ctx, tmdbID, false)
	}
	if err != nil {
		return "", err
	}

	posterPath, _ := getString(details, "poster_path")
	if posterPath == "" {
		return "", ErrNoPoster
	}

	savePath := filepath.Join(dir, PosterFileName(mediaType, tmdbID))
	if err := c.DownloadAndResizeImage(ctx, c.ImageURL(posterPath), savePath, maxWidth); err != nil {
		return "", err
	}
	return savePath, nil
}

// DownloadAndResizeImage downloads an image and resizes it to the specified width.
func (c *Client) DownloadAndResizeImage(ctx context.Context, imageURL, savePath string, maxWidth int) error {
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d downloading image", resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return err
	}

	return imaging.Save(img, savePath, imaging.JPEGQuality(85))
}
