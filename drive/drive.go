// Package drive resolves user-supplied Google Drive links or raw file
// IDs into binary image contents for the report builder.
package drive

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/dalgorosas/sistema-informes-dalgoro/config"
)

// Recognized shapes, tried in order:
//   - the raw ID itself (alphanumeric, _ and -, at least 20 chars)
//   - https://drive.google.com/file/d/<ID>/view?usp=sharing
//   - https://drive.google.com/open?id=<ID>
//   - https://drive.google.com/uc?id=<ID>&export=download
var (
	idRaw      = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`)
	idPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/d/([a-zA-Z0-9_-]{20,})/`),
		regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]{20,})`),
	}
)

// ExtractID returns the Drive file ID contained in a URL or raw ID, or
// "" when the input matches none of the known shapes.
func ExtractID(urlOrID string) string {
	s := strings.TrimSpace(urlOrID)
	if s == "" {
		return ""
	}
	if idRaw.MatchString(s) {
		return s
	}
	for _, pat := range idPatterns {
		if m := pat.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	return ""
}

// NormalizeIDs maps a mixed list of IDs/URLs to valid IDs, dropping
// unrecognized entries and deduplicating first-seen-wins while keeping
// the original order.
func NormalizeIDs(mixed []string) []string {
	seen := make(map[string]bool, len(mixed))
	var unique []string
	for _, x := range mixed {
		fid := ExtractID(x)
		if fid == "" || seen[fid] {
			continue
		}
		seen[fid] = true
		unique = append(unique, fid)
	}
	return unique
}

// SplitIDList splits the comma-separated imagenes_drive_ids field into
// its trimmed, non-empty entries.
func SplitIDList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Downloader fetches file contents by Drive ID. The production
// implementation streams from the Drive API; tests substitute a fake.
type Downloader interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// GoogleDownloader implements Downloader on the Drive v3 API.
type GoogleDownloader struct {
	svc *drive.Service
}

func NewGoogleDownloader(ctx context.Context, cfg *config.Settings) (*GoogleDownloader, error) {
	opts := []option.ClientOption{option.WithScopes(drive.DriveReadonlyScope)}
	if cfg.ServiceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	} else if cfg.ServiceAccountFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountFile))
	}
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create drive client: %w", err)
	}
	return &GoogleDownloader{svc: svc}, nil
}

func (g *GoogleDownloader) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := g.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("could not download drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read drive file %s: %w", fileID, err)
	}
	return data, nil
}

// DownloadImages fetches each file and returns the binaries that could
// be retrieved. A failed download (permissions, bad ID, transient error)
// is logged and skipped so a partial image set never aborts report
// generation. No retries.
func DownloadImages(ctx context.Context, dl Downloader, fileIDs []string) [][]byte {
	logger := config.GetLogger()
	binaries := make([][]byte, 0, len(fileIDs))
	for _, fid := range fileIDs {
		if fid == "" {
			continue
		}
		data, err := dl.Download(ctx, fid)
		if err != nil {
			config.LogWarn(logger, "drive.go", "DownloadImages", "Download", fid, err)
			continue
		}
		binaries = append(binaries, data)
	}
	return binaries
}
