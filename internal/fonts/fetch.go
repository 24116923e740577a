package fonts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultFamily has Cyrillic glyphs for the panel labels.
	DefaultFamily = "Noto Sans"

	defaultAPIBase   = "https://api.github.com/repos/google/fonts/contents/ofl"
	defaultRawPrefix = "https://raw.githubusercontent.com/google/fonts/"
	userAgent        = "cylinder-lab"
)

// Fetcher downloads fonts from the Google Fonts repository or from a direct
// URL. The zero value is not usable; use NewFetcher.
type Fetcher struct {
	Client *http.Client
	// APIBase lists a family folder; RawPrefix restricts which download URLs
	// from the listing are accepted.
	APIBase   string
	RawPrefix string
}

// NewFetcher returns a Fetcher for the public Google Fonts repository.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: 60 * time.Second},
		APIBase:   defaultAPIBase,
		RawPrefix: defaultRawPrefix,
	}
}

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// NormalizeFamily converts a display name to the folder names the repository
// may use, e.g. "Noto Sans" -> "notosans", "noto-sans".
func NormalizeFamily(name string) []string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return nil
	}
	noSpaces := strings.ReplaceAll(lower, " ", "")
	withHyphens := strings.ReplaceAll(lower, " ", "-")
	out := []string{noSpaces}
	if withHyphens != noSpaces {
		out = append(out, withHyphens)
	}
	return out
}

// FamilyURL returns the raw download URL of a font file in the family,
// preferring a regular face over italic or bold ones.
func (f *Fetcher) FamilyURL(ctx context.Context, family string) (string, error) {
	candidates := NormalizeFamily(family)
	if len(candidates) == 0 {
		return "", fmt.Errorf("fonts: empty family name")
	}
	var lastErr error
	for _, folder := range candidates {
		u, err := f.folderURL(ctx, folder)
		if err == nil {
			return u, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func (f *Fetcher) folderURL(ctx context.Context, folder string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.APIBase+"/"+url.PathEscape(folder), nil)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", fmt.Errorf("fonts: family %q not found", folder)
	default:
		return "", fmt.Errorf("fonts: listing %q: HTTP %d", folder, resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("fonts: %w", err)
	}

	var names []string
	byName := make(map[string]string)
	for _, file := range files {
		if file.Type != "file" || !isFont(file.Name) || !strings.HasPrefix(file.DownloadURL, f.RawPrefix) {
			continue
		}
		names = append(names, file.Name)
		byName[file.Name] = file.DownloadURL
	}
	if len(names) == 0 {
		return "", fmt.Errorf("fonts: no .ttf/.otf file in %q", folder)
	}
	return byName[preferRegular(names)], nil
}

// Download saves the body of rawURL under destDir and returns the file path.
// The name comes from Content-Disposition or the URL path.
func (f *Fetcher) Download(ctx context.Context, rawURL, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}

	ext := extensionFromURL(rawURL)
	if ext == "" {
		ext = extensionFromContentType(resp.Header.Get("Content-Type"))
	}
	name := filenameFromContentDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = filenameFromURL(rawURL)
	}
	name = sanitizeFilename(name)
	if ext != "" && !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	saved := filepath.Join(destDir, name)
	out, err := os.Create(saved)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		_ = os.Remove(saved)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	return saved, nil
}

// Install downloads rawURL into destDir. A zip archive is extracted into a
// folder named after it and the best face inside is returned.
func (f *Fetcher) Install(ctx context.Context, rawURL, destDir string) (string, error) {
	saved, err := f.Download(ctx, rawURL, destDir)
	if err != nil {
		return "", err
	}
	if strings.ToLower(filepath.Ext(saved)) != ".zip" {
		if !isFont(saved) {
			_ = os.Remove(saved)
			return "", fmt.Errorf("fonts: %s is not a font", filepath.Base(saved))
		}
		return saved, nil
	}
	dir := strings.TrimSuffix(saved, filepath.Ext(saved))
	if _, err := Unzip(saved, dir); err != nil {
		return "", err
	}
	_ = os.Remove(saved)
	path, ok := Find(dir)
	if !ok {
		return "", fmt.Errorf("fonts: no .ttf/.otf file in %s", filepath.Base(saved))
	}
	return path, nil
}

// FetchFamily installs a face of family from the repository into destDir.
func (f *Fetcher) FetchFamily(ctx context.Context, family, destDir string) (string, error) {
	u, err := f.FamilyURL(ctx, family)
	if err != nil {
		return "", err
	}
	return f.Install(ctx, u, destDir)
}

func filenameFromContentDisposition(cd string) string {
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := strings.Trim(cd[i+len("filename="):], "\" ")
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	return ""
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	switch {
	case strings.Contains(ct, "zip"):
		return ".zip"
	case strings.Contains(ct, "otf"):
		return ".otf"
	case strings.Contains(ct, "font"), strings.Contains(ct, "ttf"):
		return ".ttf"
	}
	return ""
}

func extensionFromURL(rawURL string) string {
	path := rawURL
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".zip", ".ttf", ".otf":
		return ext
	}
	return ""
}

func filenameFromURL(rawURL string) string {
	path := rawURL
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.\[\],-]+`)

func sanitizeFilename(name string) string {
	name = safeNameRe.ReplaceAllString(name, "_")
	name = strings.Trim(name, ".")
	if name == "" {
		return "font"
	}
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
