package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/jotme/internal/client/session"
	"github.com/google/uuid"
)

const (
	ParamUserEmail = "userEmail"
	ParamUserID    = "userId"

	ContentTypeForm = "application/x-www-form-urlencoded"

	DefaultUserAgent = "jotme-cli/1.0"
)

// FilePayload is the file part of a multipart request.
type FilePayload struct {
	Data     []byte
	Name     string
	MIMEType string
}

// Request describes a backend call independently of the session, so it can
// be rebuilt verbatim after a token refresh.
type Request struct {
	Endpoint string
	Method   string
	Params   Params
	File     *FilePayload
}

// Builder resolves endpoints against the backend base address and produces
// ready-to-send *http.Request values.
type Builder struct {
	baseURL   string
	userAgent string
	boundary  func() string
}

func NewBuilder(baseURL string) *Builder {
	return &Builder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: DefaultUserAgent,
		boundary:  newBoundary,
	}
}

func newBoundary() string {
	return "Boundary-" + uuid.NewString()
}

// ResolveURL joins endpoint to the base address. Absolute http(s) endpoints
// are used as given.
func (b *Builder) ResolveURL(endpoint string) (*url.URL, error) {
	raw := endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		raw = b.baseURL + endpoint
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidEndpoint, endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}
	return u, nil
}

// Build creates the HTTP request for r on behalf of snap.
//
// userEmail and userId (0 when unknown) are always added, overriding values
// of the same keys in r.Params. GET sends them in the query string; POST and
// PUT send a form-encoded body, or a multipart body when r.File is set.
func (b *Builder) Build(ctx context.Context, r Request, snap session.Snapshot) (*http.Request, error) {
	u, err := b.ResolveURL(r.Endpoint)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(r.Method)
	if method == "" {
		method = http.MethodGet
		if r.File != nil {
			method = http.MethodPost
		}
	}

	params := r.Params.Clone()
	params.Set(ParamUserEmail, snap.UserEmail)
	params.Set(ParamUserID, snap.UserIDOrZero())

	var (
		body        io.Reader
		contentType string
	)

	switch {
	case method == http.MethodGet:
		if r.File != nil {
			return nil, fmt.Errorf("%w: file upload requires POST or PUT", ErrInvalidRequest)
		}
		if u.RawQuery != "" {
			u.RawQuery += "&"
		}
		u.RawQuery += params.Encode()

	case method != http.MethodPost && method != http.MethodPut:
		return nil, fmt.Errorf("%w: unsupported method %s", ErrInvalidRequest, method)

	case r.File != nil:
		data, ct, err := EncodeMultipart(params, *r.File, b.boundary())
		if err != nil {
			return nil, err
		}
		body, contentType = bytes.NewReader(data), ct

	default:
		body, contentType = strings.NewReader(params.Encode()), ContentTypeForm
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", b.userAgent)
	if snap.HasToken() {
		req.Header.Set("Authorization", "Bearer "+snap.AccessToken)
	}

	return req, nil
}

// EncodeMultipart writes one form-data part per field in order, then the
// file part named "file", then the closing delimiter. It returns the body and
// its Content-Type header value.
func EncodeMultipart(params Params, file FilePayload, boundary string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	for _, p := range params.items {
		if err := w.WriteField(p.Key, p.Value); err != nil {
			return nil, "", err
		}
	}

	mimeType := file.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(file.Name)))
	h.Set("Content-Type", mimeType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
