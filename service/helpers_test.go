package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/canken881226/amazon-Listing-Tool/models"
	"github.com/canken881226/amazon-Listing-Tool/repository"
)

// workbook builds an xlsx file whose first rows are rows
func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", axis, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// cellValue reads one cell of the first sheet of data
func cellValue(t *testing.T, data []byte, row, col int) string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	axis, err := excelize.CoordinatesToCellName(col, row)
	require.NoError(t, err)
	v, err := f.GetCellValue(f.GetSheetName(0), axis)
	require.NoError(t, err)
	return v
}

// usTemplate mimics the header block of a US bulk-listing template
func usTemplate(t *testing.T) []byte {
	return workbook(t, [][]any{
		{"TemplateType=fptcustom", "Version=2024.0312"},
		{"Seller SKU", "Parent SKU", "Parentage", "Product Name", "Brand Name", "Color", "Color Map", "Size", "Size Map",
			"Standard Price", "Generic Keywords", "Key Product Features1", "Key Product Features2",
			"Key Product Features3", "Key Product Features4", "Key Product Features5"},
		{"item_sku", "parent_sku", "parent_child", "item_name", "brand_name", "color_name", "color_map", "size_name",
			"size_map", "standard_price", "generic_keywords", "bullet_point1", "bullet_point2", "bullet_point3",
			"bullet_point4", "bullet_point5"},
	})
}

// stubAnnotator answers by image content. Images it has no answer for fail.
type stubAnnotator struct {
	mu      sync.Mutex
	answers map[string]models.BaseItemAnnotation
	calls   int
}

func (s *stubAnnotator) Annotate(ctx context.Context, image []byte, hint string) (*models.BaseItemAnnotation, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if ann, ok := s.answers[string(image)]; ok {
		return &ann, nil
	}
	return nil, fmt.Errorf("model refused image")
}

// memoryJobRepo keeps jobs in a slice
type memoryJobRepo struct {
	mu   sync.Mutex
	jobs []models.ListingJob
}

var _ repository.ListingJobRepositoryInterface = (*memoryJobRepo)(nil)

func (m *memoryJobRepo) Insert(ctx context.Context, job *models.ListingJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, *job)
	return nil
}

func (m *memoryJobRepo) GetByID(ctx context.Context, id string) (*models.ListingJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, repository.ErrJobNotFound
}

func (m *memoryJobRepo) List(ctx context.Context, limit int) ([]models.ListingJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ListingJob(nil), m.jobs...), nil
}

// fakeDrive serves files from memory
type fakeDrive struct {
	images []models.DriveImage
	files  map[string][]byte
}

func (f *fakeDrive) ListProductImages(ctx context.Context, folderID string) ([]models.DriveImage, error) {
	return f.images, nil
}

func (f *fakeDrive) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	if b, ok := f.files[fileID]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("file %s not found", fileID)
}
