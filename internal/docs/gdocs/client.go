// Package gdocs is the live docs.Provider implementation against the vendor's
// document and file REST APIs. The generator only ever sees the docs.Provider
// interface; everything vendor-specific (wire shapes, OAuth refresh, error
// classification) stays here.
package gdocs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"barangay/internal/docs"
	"barangay/pkg/platform/sentinel"
)

const (
	defaultDocsBaseURL  = "https://docs.googleapis.com/v1"
	defaultDriveBaseURL = "https://www.googleapis.com/drive/v3"
	tokenURL            = "https://oauth2.googleapis.com/token"
)

// Config carries the long-lived credential and endpoints. The refresh token is
// exchanged for an access token per request chain; concurrent generations
// refresh independently, there is no cross-request token cache.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// DocsBaseURL/DriveBaseURL override the live endpoints in tests.
	DocsBaseURL  string
	DriveBaseURL string
	TokenURL     string
}

// Client implements docs.Provider over HTTP. Construct once per process and
// inject; it is safe for concurrent use.
type Client struct {
	cfg    Config
	logger *slog.Logger
}

var _ docs.Provider = (*Client)(nil)

func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.DocsBaseURL == "" {
		cfg.DocsBaseURL = defaultDocsBaseURL
	}
	if cfg.DriveBaseURL == "" {
		cfg.DriveBaseURL = defaultDriveBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = tokenURL
	}
	return &Client{cfg: cfg, logger: logger}
}

// httpClient builds a fresh OAuth-backed client. Each call chain performs its
// own refresh; a failed refresh surfaces as sentinel.ErrCredential downstream.
func (c *Client) httpClient(ctx context.Context) *http.Client {
	conf := &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: c.cfg.TokenURL},
	}
	return oauth2.NewClient(ctx, conf.TokenSource(ctx, &oauth2.Token{RefreshToken: c.cfg.RefreshToken}))
}

func (c *Client) CopyTemplate(ctx context.Context, templateID, folderID, name string) (string, error) {
	body := map[string]any{
		"name":    name,
		"parents": []string{folderID},
	}
	var resp struct {
		ID string `json:"id"`
	}
	path := fmt.Sprintf("%s/files/%s/copy", c.cfg.DriveBaseURL, url.PathEscape(templateID))
	if err := c.doJSON(ctx, http.MethodPost, path, body, &resp); err != nil {
		return "", fmt.Errorf("copy template %s: %w", templateID, err)
	}
	return resp.ID, nil
}

func (c *Client) ReplaceAllText(ctx context.Context, documentID string, replacements []docs.Replacement) error {
	reqs := make([]map[string]any, 0, len(replacements))
	for _, rep := range replacements {
		reqs = append(reqs, map[string]any{
			"replaceAllText": map[string]any{
				"containsText": map[string]any{"text": rep.Match, "matchCase": true},
				"replaceText":  rep.Value,
			},
		})
	}
	return c.batchUpdate(ctx, documentID, reqs)
}

func (c *Client) InsertInlineImage(ctx context.Context, documentID string, index int64, imageURL string, size docs.Size) error {
	req := map[string]any{
		"insertInlineImage": map[string]any{
			"location": map[string]any{"index": index},
			"uri":      imageURL,
			"objectSize": map[string]any{
				"width":  map[string]any{"magnitude": size.WidthPt, "unit": "PT"},
				"height": map[string]any{"magnitude": size.HeightPt, "unit": "PT"},
			},
		},
	}
	return c.batchUpdate(ctx, documentID, []map[string]any{req})
}

func (c *Client) UpdateTextStyle(ctx context.Context, documentID string, start, end int64, style docs.TextStyle) error {
	req := map[string]any{
		"updateTextStyle": map[string]any{
			"range":     map[string]any{"startIndex": start, "endIndex": end},
			"textStyle": map[string]any{"bold": style.Bold},
			"fields":    "bold",
		},
	}
	return c.batchUpdate(ctx, documentID, []map[string]any{req})
}

func (c *Client) DeleteRange(ctx context.Context, documentID string, start, end int64) error {
	req := map[string]any{
		"deleteContentRange": map[string]any{
			"range": map[string]any{"startIndex": start, "endIndex": end},
		},
	}
	return c.batchUpdate(ctx, documentID, []map[string]any{req})
}

func (c *Client) batchUpdate(ctx context.Context, documentID string, requests []map[string]any) error {
	path := fmt.Sprintf("%s/documents/%s:batchUpdate", c.cfg.DocsBaseURL, url.PathEscape(documentID))
	if err := c.doJSON(ctx, http.MethodPost, path, map[string]any{"requests": requests}, nil); err != nil {
		return fmt.Errorf("batch update %s: %w", documentID, err)
	}
	return nil
}

func (c *Client) GetDocument(ctx context.Context, documentID string) (*docs.Document, error) {
	var wire wireDocument
	path := fmt.Sprintf("%s/documents/%s", c.cfg.DocsBaseURL, url.PathEscape(documentID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}
	return wire.toDocument(), nil
}

func (c *Client) ListFiles(ctx context.Context, folderID string) ([]docs.File, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("'%s' in parents and trashed = false", folderID))
	q.Set("fields", "files(id,name)")
	q.Set("pageSize", "1000")

	var resp struct {
		Files []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"files"`
	}
	path := fmt.Sprintf("%s/files?%s", c.cfg.DriveBaseURL, q.Encode())
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list files in %s: %w", folderID, err)
	}
	files := make([]docs.File, 0, len(resp.Files))
	for _, f := range resp.Files {
		files = append(files, docs.File{ID: f.ID, Name: f.Name})
	}
	return files, nil
}

func (c *Client) DocumentURL(documentID string) string {
	return "https://docs.google.com/document/d/" + documentID + "/edit"
}

func (c *Client) FileURL(fileID string) string {
	return "https://drive.google.com/uc?id=" + fileID
}

func (c *Client) doJSON(ctx context.Context, method, rawURL string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient(ctx).Do(req)
	if err != nil {
		// oauth2 surfaces invalid_grant as a RetrieveError inside the transport.
		if strings.Contains(err.Error(), "invalid_grant") {
			c.logger.ErrorContext(ctx, "provider refresh token rejected; re-authorize the service account",
				"error", err.Error())
			return fmt.Errorf("%w: %v", sentinel.ErrCredential, err)
		}
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return err
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func classifyStatus(resp *http.Response) error {
	if resp.StatusCode < 300 {
		return nil
	}
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	switch {
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && bytes.Contains(payload, []byte("ateLimit")):
		return fmt.Errorf("%w: status %d", sentinel.ErrRateLimited, resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: status %d", sentinel.ErrCredential, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", sentinel.ErrNotFound, resp.StatusCode)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", sentinel.ErrUnavailable, resp.StatusCode)
	default:
		return fmt.Errorf("provider error: status %d: %s", resp.StatusCode, bytes.TrimSpace(payload))
	}
}

// Wire shapes for the subset of the document content tree the generator reads.

type wireDocument struct {
	DocumentID string `json:"documentId"`
	Body       struct {
		Content []wireStructuralElement `json:"content"`
	} `json:"body"`
}

type wireStructuralElement struct {
	Paragraph *wireParagraph `json:"paragraph"`
	Table     *wireTable     `json:"table"`
}

type wireParagraph struct {
	Elements []struct {
		StartIndex int64 `json:"startIndex"`
		EndIndex   int64 `json:"endIndex"`
		TextRun    *struct {
			Content string `json:"content"`
		} `json:"textRun"`
	} `json:"elements"`
}

type wireTable struct {
	TableRows []struct {
		TableCells []struct {
			Content []wireStructuralElement `json:"content"`
		} `json:"tableCells"`
	} `json:"tableRows"`
}

func (w *wireDocument) toDocument() *docs.Document {
	return &docs.Document{
		ID:   w.DocumentID,
		Body: convertElements(w.Body.Content),
	}
}

func convertElements(elements []wireStructuralElement) []docs.Element {
	var out []docs.Element
	for _, el := range elements {
		switch {
		case el.Paragraph != nil:
			p := &docs.Paragraph{}
			for _, pe := range el.Paragraph.Elements {
				if pe.TextRun == nil {
					continue
				}
				p.Runs = append(p.Runs, docs.TextRun{
					StartIndex: pe.StartIndex,
					EndIndex:   pe.EndIndex,
					Content:    pe.TextRun.Content,
				})
			}
			out = append(out, docs.Element{Paragraph: p})
		case el.Table != nil:
			t := &docs.Table{}
			for _, row := range el.Table.TableRows {
				r := docs.TableRow{}
				for _, cell := range row.TableCells {
					r.Cells = append(r.Cells, docs.TableCell{Elements: convertElements(cell.Content)})
				}
				t.Rows = append(t.Rows, r)
			}
			out = append(out, docs.Element{Table: t})
		}
	}
	return out
}
