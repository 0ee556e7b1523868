package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/fretwork/internal/catalog"
	"github.com/starford/fretwork/internal/chordlib"
)

const (
	maxLibrarySize = 1 << 20
	importDir      = "imported"
	maxRedirects   = 3
)

var (
	yamlMediaTypes = map[string]bool{
		"application/yaml":   true,
		"application/x-yaml": true,
		"text/yaml":          true,
		"text/x-yaml":        true,
		"text/plain":         true,
	}

	unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

	errNotBase64 = errors.New("data URI must be base64 encoded")

	libraryClient = &http.Client{
		Timeout: 15 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return checkBlockedHost(req.URL.Hostname())
		},
	}
)

// payload is a downloaded or inlined library file.
type payload struct {
	data []byte
	// name is the file name suggested by the source, if any.
	name string
}

type importResult struct {
	SavedPath string   `json:"savedPath"`
	Title     string   `json:"title"`
	Chords    int      `json:"chords"`
	Skipped   []string `json:"skipped,omitempty"`
}

func (s *Server) importLibrary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawURL, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var p payload
	if strings.HasPrefix(rawURL, "data:") {
		p, err = decodeDataURI(rawURL)
	} else {
		p, err = fetchHTTP(ctx, rawURL)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filename := sanitizeFilename(req.GetString("filename", p.name))
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".yaml" && ext != ".yml" {
		return mcp.NewToolResultError(fmt.Sprintf("chord libraries must be .yaml or .yml files, got %q", filename)), nil
	}

	parsed, err := chordlib.Parse(filename, p.data)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(parsed.Chords) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("%s holds no valid chords", filename)), nil
	}

	savePath := path.Join(importDir, filename)
	if _, err := s.library.Read(savePath); err == nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s already exists; choose another filename", savePath)), nil
	}
	if err := s.library.Write(savePath, p.data); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("save %s: %v", savePath, err)), nil
	}
	if err := catalog.Sync(s.db, s.library, s.logger); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("saved %s but re-index failed: %v", savePath, err)), nil
	}

	out, _ := json.Marshal(importResult{
		SavedPath: savePath,
		Title:     parsed.Title,
		Chords:    len(parsed.Chords),
		Skipped:   parsed.Invalid,
	})
	return mcp.NewToolResultText(string(out)), nil
}

// decodeDataURI reads a data:<yaml media type>;base64,<data> URI.
func decodeDataURI(uri string) (payload, error) {
	meta, encoded, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return payload{}, fmt.Errorf("malformed data URI")
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return payload{}, errNotBase64
	}
	if mt, _, err := mime.ParseMediaType(mediaType); err != nil || !yamlMediaTypes[mt] {
		return payload{}, fmt.Errorf("data URI media type %q is not YAML", mediaType)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(encoded); err != nil {
			return payload{}, fmt.Errorf("decode data URI: %w", err)
		}
	}
	if len(data) > maxLibrarySize {
		return payload{}, fmt.Errorf("library is %d bytes, limit is %d", len(data), maxLibrarySize)
	}
	return payload{data: data}, nil
}

// fetchHTTP downloads a library file, refusing internal hosts and
// oversized bodies.
func fetchHTTP(ctx context.Context, rawURL string) (payload, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return payload{}, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return payload{}, fmt.Errorf("unsupported scheme %q: use http, https or data", u.Scheme)
	}
	if err := checkBlockedHost(u.Hostname()); err != nil {
		return payload{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return payload{}, fmt.Errorf("invalid URL: %w", err)
	}
	resp, err := libraryClient.Do(req)
	if err != nil {
		return payload{}, fmt.Errorf("download %s: %w", u.Host, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return payload{}, fmt.Errorf("download %s: HTTP %d", u.Host, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLibrarySize+1))
	if err != nil {
		return payload{}, fmt.Errorf("download %s: %w", u.Host, err)
	}
	if len(data) > maxLibrarySize {
		return payload{}, fmt.Errorf("library exceeds %d bytes", maxLibrarySize)
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || !strings.Contains(name, ".") {
		name = ""
	}
	return payload{data: data, name: name}, nil
}

// checkBlockedHost rejects loopback, private, link-local and cloud
// metadata addresses.
func checkBlockedHost(host string) error {
	if host == "" || host == "metadata.google.internal" {
		return fmt.Errorf("blocked host %q", host)
	}

	ip := net.ParseIP(host)
	if ip == nil {
		ips, err := net.LookupIP(host)
		if err != nil || len(ips) == 0 {
			// Resolution failures surface from the client instead.
			return nil
		}
		ip = ips[0]
	}

	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
		return fmt.Errorf("blocked host %q: internal address %s", host, ip)
	}
	return nil
}

// sanitizeFilename keeps the base name and replaces unsafe characters. An
// empty result gets a random name.
func sanitizeFilename(name string) string {
	name = unsafeFilenameRe.ReplaceAllString(filepath.Base(name), "_")
	if name == "" || name == "." || name == "_" {
		return uuid.NewString() + ".yaml"
	}
	return name
}
