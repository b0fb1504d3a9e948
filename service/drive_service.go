package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/canken881226/amazon-Listing-Tool/models"
	"github.com/canken881226/amazon-Listing-Tool/utils"
)

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	client, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath), option.WithScopes(drive.DriveReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveService{client: client}, nil
}

// ListProductImages lists the photos in a Drive folder whose names are valid SKU prefixes,
// sorted by file name. Other files are logged and skipped.
func (ds *DriveService) ListProductImages(ctx context.Context, folderID string) ([]models.DriveImage, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", strings.ReplaceAll(folderID, "'", "\\'"))

	var images []models.DriveImage
	err := ds.client.Files.List().
		Q(query).
		Fields("nextPageToken, files(id, name, mimeType)").
		Pages(ctx, func(r *drive.FileList) error {
			for _, file := range r.Files {
				if !imageMimeTypes[strings.ToLower(file.MimeType)] {
					continue
				}
				prefix, err := utils.ParseSKUPrefix(file.Name)
				if err != nil {
					zap.S().Warnf("⚠️ Skipping %s: %v", file.Name, err)
					continue
				}
				images = append(images, models.DriveImage{
					DriveFileID: file.Id,
					FileName:    file.Name,
					MimeType:    file.MimeType,
					ImageURL:    fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id),
					SKUPrefix:   prefix,
				})
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	sort.Slice(images, func(i, j int) bool { return images[i].FileName < images[j].FileName })
	zap.S().Infof("📦 Drive folder %s: %d product images", folderID, len(images))
	return images, nil
}

// DownloadImage downloads the raw bytes of a Drive file
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}
