package controller

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/canken881226/amazon-Listing-Tool/listing"
	"github.com/canken881226/amazon-Listing-Tool/models"
	"github.com/canken881226/amazon-Listing-Tool/service"
	"github.com/canken881226/amazon-Listing-Tool/utils"
)

// validFormats is a map of valid output formats
var validFormats = map[string]bool{
	"xlsx": true,
	"html": true,
	"pdf":  true,
}

// ListingController handles HTTP requests for template filling
type ListingController struct {
	listingService  service.ListingServiceInterface
	previewService  service.PreviewServiceInterface
	maxUploadBytes  int64
	defaultFolderID string
}

// NewListingController creates a new ListingController
func NewListingController(
	listingService service.ListingServiceInterface,
	previewService service.PreviewServiceInterface,
	maxUploadMB int64,
	defaultFolderID string,
) *ListingController {
	return &ListingController{
		listingService:  listingService,
		previewService:  previewService,
		maxUploadBytes:  maxUploadMB << 20,
		defaultFolderID: defaultFolderID,
	}
}

// Fill handles POST /admin/listings/fill
// multipart: template, image (repeatable), prefix|prefixes, brand, sizes, prices, keywords, hint, format=xlsx|html|pdf
func (c *ListingController) Fill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, format, templateName, ok := c.parseFillForm(w, r)
	if !ok {
		return
	}

	images := r.MultipartForm.File["image"]
	if len(images) == 0 {
		writeError(w, http.StatusBadRequest, "at least one image file is required")
		return
	}
	prefixes := splitPrefixes(r.FormValue("prefix"), r.FormValue("prefixes"))
	if len(prefixes) > 0 && len(prefixes) != len(images) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("got %d prefixes for %d images", len(prefixes), len(images)))
		return
	}

	hint := strings.TrimSpace(r.FormValue("hint"))
	for i, fh := range images {
		data, err := readPart(fh)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read image %s: %v", fh.Filename, err))
			return
		}
		prefix := ""
		if len(prefixes) > 0 {
			prefix = prefixes[i]
		} else if prefix, err = utils.ParseSKUPrefix(fh.Filename); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("prefix is required: %v", err))
			return
		}
		req.Items = append(req.Items, models.ItemInput{
			Prefix:   prefix,
			FileName: fh.Filename,
			Image:    data,
			MimeType: fh.Header.Get("Content-Type"),
			Hint:     hint,
		})
	}

	zap.S().Infof("📥 Fill request: %d images, format=%s", len(req.Items), format)
	result, err := c.listingService.FillTemplate(r.Context(), req)
	if err != nil {
		zap.S().Errorf("❌ Fill failed: %v", err)
		writeError(w, statusForError(err), err.Error())
		return
	}
	c.writeResult(w, r, result, format, templateName)
}

// FillFromDrive handles POST /admin/listings/fill-from-drive
// multipart: template, folderId (defaults to DRIVE_FOLDER_ID), brand, sizes, prices, keywords, format
func (c *ListingController) FillFromDrive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !c.listingService.DriveEnabled() {
		writeError(w, http.StatusServiceUnavailable, "google drive is not configured")
		return
	}

	req, format, templateName, ok := c.parseFillForm(w, r)
	if !ok {
		return
	}
	folderID := strings.TrimSpace(r.FormValue("folderId"))
	if folderID == "" {
		folderID = c.defaultFolderID
	}
	if folderID == "" {
		writeError(w, http.StatusBadRequest, "folderId is required")
		return
	}

	zap.S().Infof("📥 Fill from Drive folder %s, format=%s", folderID, format)
	result, err := c.listingService.FillFromDrive(r.Context(), folderID, req)
	if err != nil {
		zap.S().Errorf("❌ Fill from Drive failed: %v", err)
		writeError(w, statusForError(err), err.Error())
		return
	}
	c.writeResult(w, r, result, format, templateName)
}

// parseFillForm reads the fields shared by both fill endpoints. On failure it has already
// written the response.
func (c *ListingController) parseFillForm(w http.ResponseWriter, r *http.Request) (models.FillRequest, string, string, bool) {
	var req models.FillRequest
	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadBytes)
	if err := r.ParseMultipartForm(c.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return req, "", "", false
	}

	format := strings.ToLower(strings.TrimSpace(r.FormValue("format")))
	if format == "" {
		format = "xlsx"
	}
	if !validFormats[format] {
		writeError(w, http.StatusBadRequest, "Invalid format. Valid formats: xlsx, html, pdf")
		return req, "", "", false
	}

	templates := r.MultipartForm.File["template"]
	if len(templates) == 0 {
		writeError(w, http.StatusBadRequest, "template file is required")
		return req, "", "", false
	}
	data, err := readPart(templates[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read template: %v", err))
		return req, "", "", false
	}

	variants, err := listing.ParseVariants(r.FormValue("sizes"), r.FormValue("prices"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, "", "", false
	}

	req.Template = data
	req.Brand = strings.TrimSpace(r.FormValue("brand"))
	req.Variants = variants
	req.KeywordPool = strings.TrimSpace(r.FormValue("keywords"))
	return req, format, templates[0].Filename, true
}

func (c *ListingController) writeResult(w http.ResponseWriter, r *http.Request, result *models.FillResult, format, templateName string) {
	w.Header().Set("X-Job-Id", result.JobID)
	w.Header().Set("X-Rows-Written", strconv.Itoa(result.RowsWritten))
	w.Header().Set("X-Warnings", strconv.Itoa(len(result.Warnings)))

	switch format {
	case "html":
		html, err := c.previewService.RenderHTML(result)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, html)
	case "pdf":
		pdf, err := c.previewService.GeneratePDF(r.Context(), result)
		if err != nil {
			zap.S().Errorf("❌ Preview PDF failed: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="listing-%s.pdf"`, result.JobID))
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
	default:
		writeWorkbook(w, result.Workbook, templateName, "listing-"+result.JobID)
	}
}

// writeWorkbook sends a workbook keeping the extension (and macro support) of the uploaded template
func writeWorkbook(w http.ResponseWriter, data []byte, templateName, baseName string) {
	ext := strings.ToLower(filepath.Ext(templateName))
	contentType := xlsxContentType
	if ext == ".xlsm" {
		contentType = xlsmContentType
	} else {
		ext = ".xlsx"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, baseName, ext))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func splitPrefixes(single, list string) []string {
	if s := strings.TrimSpace(single); s != "" {
		return []string{s}
	}
	var out []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
