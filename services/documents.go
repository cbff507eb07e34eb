package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/edura-app/edura-go/core"
)

// DocumentFilters narrows a document listing. Zero values are omitted from
// the query entirely.
type DocumentFilters struct {
	Type       string
	Length     string
	FileType   string
	UploadDate string
	Language   string
	SchoolID   string
	CategoryID string
}

func (f DocumentFilters) params() map[string]string {
	return map[string]string{
		"type":       f.Type,
		"length":     f.Length,
		"fileType":   f.FileType,
		"uploadDate": f.UploadDate,
		"language":   f.Language,
		"schoolId":   f.SchoolID,
		"categoryId": f.CategoryID,
	}
}

// DocumentService covers the /api/documents endpoints, including uploads
// and the binary download path.
type DocumentService struct {
	d *Dispatcher
}

func NewDocumentService(d *Dispatcher) *DocumentService {
	return &DocumentService{d: d}
}

// List fetches one page of documents matching search and filters. The
// response envelope varies by deployment; the result is always the
// normalized flat slice.
func (s *DocumentService) List(ctx context.Context, search string, filters DocumentFilters, page, limit int) ([]core.Document, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 12
	}

	params := filters.params()
	params["search"] = search
	params["page"] = strconv.Itoa(page)
	params["limit"] = strconv.Itoa(limit)

	path := "/api/documents"
	if query := core.EncodeQuery(params); query != "" {
		path += "?" + query
	}

	raw, err := s.d.Do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	return core.NormalizeDocuments(raw), nil
}

func (s *DocumentService) Get(ctx context.Context, documentID string) (*core.Document, error) {
	var doc core.Document
	if err := s.d.DoJSON(ctx, "GET", "/api/documents/"+documentID, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// IncrementViews records one view. Fire it after opening a document; the
// response carries nothing of interest.
func (s *DocumentService) IncrementViews(ctx context.Context, documentID string) error {
	return s.d.DoJSON(ctx, "POST", "/api/documents/"+documentID+"/view", nil, nil)
}

// RawURL builds the direct link to a document's binary. Pure string
// construction, no network call: the link is used both for embedding and as
// the base of an authenticated download.
func (s *DocumentService) RawURL(documentID string) string {
	return s.d.BaseURL() + "/api/documents/" + documentID + "/raw"
}

// Text fetches the extracted plain text of a document.
func (s *DocumentService) Text(ctx context.Context, documentID string) (string, error) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := s.d.DoJSON(ctx, "GET", "/api/documents/"+documentID+"/text", nil, &payload); err != nil {
		return "", err
	}
	return payload.Text, nil
}

// DownloadToFile fetches the raw binary and writes it to path, returning
// the path written. It bypasses the dispatcher's JSON path on purpose: the
// body is consumed as a stream, not parsed. The bearer header is attached
// explicitly. An empty path defaults to "document.pdf"; a missing extension
// gets ".pdf" appended, matching how the web client names downloads.
func (s *DocumentService) DownloadToFile(ctx context.Context, documentID, path string) (string, error) {
	if path == "" {
		path = "document.pdf"
	}
	if !strings.Contains(path, ".") {
		path += ".pdf"
	}

	url := s.RawURL(documentID)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build download request: %w", err)
	}
	if token := s.d.Session().Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := s.d.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &core.NetworkError{URL: url, Unreachable: isUnreachable(err), Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", &core.APIError{
			Status:  res.StatusCode,
			Message: fmt.Sprintf("could not download file: HTTP %d", res.StatusCode),
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := io.Copy(out, res.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// Upload sends the file plus its metadata as one multipart request. image
// may be nil.
func (s *DocumentService) Upload(ctx context.Context, file io.Reader, filename, title, schoolID, categoryID string, image io.Reader, imageName string) (*core.Document, error) {
	form := NewForm().
		AddFile("file", filename, file).
		AddField("title", title).
		AddField("schoolId", schoolID).
		AddField("categoryId", categoryID)
	if image != nil {
		form.AddFile("image", imageName, image)
	}

	raw, err := s.d.DoForm(ctx, "POST", "/api/documents/upload", form)
	if err != nil {
		return nil, err
	}
	var doc core.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &doc, nil
}

// Presign starts the direct-to-S3 upload flow.
func (s *DocumentService) Presign(ctx context.Context, ext, contentType string) (*core.PresignResult, error) {
	var result core.PresignResult
	err := s.d.DoJSON(ctx, "POST", "/api/documents/presign", map[string]string{
		"ext":         ext,
		"contentType": contentType,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RegisterUpload completes the direct-to-S3 flow by registering the
// uploaded object as a document.
func (s *DocumentService) RegisterUpload(ctx context.Context, input core.RegisterDocumentInput) (*core.Document, error) {
	var doc core.Document
	if err := s.d.DoJSON(ctx, "POST", "/api/documents/register", input, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	return s.d.DoJSON(ctx, "DELETE", "/api/documents/"+documentID, nil, nil)
}

// FeaturedWeek returns this week's featured documents.
func (s *DocumentService) FeaturedWeek(ctx context.Context, limit int) ([]core.Document, error) {
	if limit <= 0 {
		limit = 3
	}
	raw, err := s.d.Do(ctx, "GET", "/api/documents/featured-week?limit="+strconv.Itoa(limit), nil)
	if err != nil {
		return nil, err
	}
	return core.NormalizeDocuments(raw), nil
}

// ListBySchool fetches one page of a school's documents through the mobile
// listing endpoint.
func (s *DocumentService) ListBySchool(ctx context.Context, schoolID, search string, page, limit int) ([]core.Document, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 12
	}
	query := core.EncodeQuery(map[string]string{
		"schoolId": schoolID,
		"search":   search,
		"page":     strconv.Itoa(page),
		"limit":    strconv.Itoa(limit),
	})
	raw, err := s.d.Do(ctx, "GET", "/api/mobile/documents?"+query, nil)
	if err != nil {
		return nil, err
	}
	return core.NormalizeDocuments(raw), nil
}

// Reactions returns the per-kind reaction counts for a document.
func (s *DocumentService) Reactions(ctx context.Context, documentID string) (map[string]int, error) {
	var counts map[string]int
	if err := s.d.DoJSON(ctx, "GET", "/api/documents/"+documentID+"/reactions", nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *DocumentService) UpdateReaction(ctx context.Context, documentID, action string) error {
	return s.d.DoJSON(ctx, "POST", "/api/documents/"+documentID+"/reactions", map[string]string{
		"action": action,
	}, nil)
}

func (s *DocumentService) Comments(ctx context.Context, documentID string) ([]core.Comment, error) {
	raw, err := s.d.Do(ctx, "GET", "/api/documents/"+documentID+"/comments", nil)
	if err != nil {
		return nil, err
	}
	list := core.ExtractList(raw, "comments", "data")
	var comments []core.Comment
	if list != nil {
		if err := json.Unmarshal(list, &comments); err != nil {
			return nil, fmt.Errorf("failed to decode comments: %w", err)
		}
	}
	return comments, nil
}

func (s *DocumentService) PostComment(ctx context.Context, documentID, content string) error {
	return s.d.DoJSON(ctx, "POST", "/api/documents/"+documentID+"/comments", map[string]string{
		"content": content,
	}, nil)
}
