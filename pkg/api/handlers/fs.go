package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/marmos91/sharefs/internal/logger"
	"github.com/marmos91/sharefs/pkg/bufpool"
	"github.com/marmos91/sharefs/pkg/sharefs"
)

// FS is the share surface the gateway serves. *sharefs.Conn implements it.
type FS interface {
	Root() string
	ReadFile(ctx context.Context, rel string) ([]byte, error)
	WriteFile(ctx context.Context, rel string, data []byte) error
	ListDir(ctx context.Context, rel string) ([]sharefs.DirEntry, error)
	Stat(ctx context.Context, rel string) (sharefs.StatResult, error)
	FileStats(ctx context.Context, rel string) (sharefs.FileStats, bool, error)
	Mkdir(ctx context.Context, rel string) error
	MkdirAll(ctx context.Context, rel string) error
	Remove(ctx context.Context, rel string) error
	Rename(ctx context.Context, from, to string, replace bool) error
	Exists(ctx context.Context, rel string) (sharefs.Kind, error)
}

// FSHandler exposes FS under /api/v1/fs.
type FSHandler struct {
	fs          FS
	maxBodySize int64
}

// NewFSHandler creates an FSHandler. maxBodySize caps uploads; zero or
// negative means no cap.
func NewFSHandler(fs FS, maxBodySize int64) *FSHandler {
	return &FSHandler{fs: fs, maxBodySize: maxBodySize}
}

// ExistsResponse is the body of GET /fs/exists.
type ExistsResponse struct {
	Path   string       `json:"path"`
	Kind   sharefs.Kind `json:"kind"`
	Exists bool         `json:"exists"`
}

// ListResponse is the body of GET /fs/list.
type ListResponse struct {
	Path    string             `json:"path"`
	Entries []sharefs.DirEntry `json:"entries"`
}

// StatResponse is the body of GET /fs/stat. Rich is set when rich=true
// was requested; otherwise Size and IsDirectory are.
type StatResponse struct {
	Path        string             `json:"path"`
	Size        *int64             `json:"size,omitempty"`
	IsDirectory *bool              `json:"is_directory,omitempty"`
	Rich        *sharefs.FileStats `json:"rich,omitempty"`
}

// MkdirRequest is the body of POST /fs/mkdir.
type MkdirRequest struct {
	Path    string `json:"path"`
	Parents bool   `json:"parents"`
}

// RenameRequest is the body of POST /fs/rename.
type RenameRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Replace bool   `json:"replace"`
}

// Stat handles GET /fs/stat?path=&rich=.
func (h *FSHandler) Stat(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	rich, err := boolParam(r, "rich")
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	if rich {
		stats, found, err := h.fs.FileStats(r.Context(), path)
		if err != nil {
			WriteShareError(w, r, err)
			return
		}
		if !found {
			NotFound(w, "no such file or directory: "+path)
			return
		}
		writeJSON(w, http.StatusOK, StatResponse{Path: path, Rich: &stats})
		return
	}

	res, err := h.fs.Stat(r.Context(), path)
	if err != nil {
		WriteShareError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatResponse{Path: path, Size: &res.Size, IsDirectory: &res.IsDirectory})
}

// Exists handles GET /fs/exists?path=.
func (h *FSHandler) Exists(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	kind, err := h.fs.Exists(r.Context(), path)
	if err != nil {
		WriteShareError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ExistsResponse{Path: path, Kind: kind, Exists: kind != sharefs.KindNotFound})
}

// List handles GET /fs/list?path=.
func (h *FSHandler) List(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	entries, err := h.fs.ListDir(r.Context(), path)
	if err != nil {
		WriteShareError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Path: path, Entries: entries})
}

// Download handles GET /fs/content?path=.
func (h *FSHandler) Download(w http.ResponseWriter, r *http.Request) {
	data, err := h.fs.ReadFile(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		WriteShareError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(data); err != nil {
		logger.DebugCtx(r.Context(), "content response write failed", logger.Err(err))
	}
}

// Upload handles PUT /fs/content?path=. The body replaces the file.
func (h *FSHandler) Upload(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if h.maxBodySize > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}
	data, release, err := readBody(body, r.ContentLength, h.maxBodySize)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteProblem(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large",
				"upload exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
			return
		}
		BadRequest(w, "failed to read request body: "+err.Error())
		return
	}
	defer release()

	if err := h.fs.WriteFile(r.Context(), r.URL.Query().Get("path"), data); err != nil {
		WriteShareError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readBody reads an upload. Bodies of known length that fit a pool class
// are read into a pooled buffer; release returns it once the write is done.
func readBody(body io.Reader, contentLength, limit int64) ([]byte, func(), error) {
	if contentLength < 0 || contentLength > int64(bufpool.DefaultLargeSize) || (limit > 0 && contentLength > limit) {
		data, err := io.ReadAll(body)
		return data, func() {}, err
	}

	buf := bufpool.Get(int(contentLength))
	if _, err := io.ReadFull(body, buf); err != nil {
		bufpool.Put(buf)
		return nil, nil, err
	}
	return buf, func() { bufpool.Put(buf) }, nil
}

// Mkdir handles POST /fs/mkdir.
func (h *FSHandler) Mkdir(w http.ResponseWriter, r *http.Request) {
	var req MkdirRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	mkdir := h.fs.Mkdir
	if req.Parents {
		mkdir = h.fs.MkdirAll
	}
	if err := mkdir(r.Context(), req.Path); err != nil {
		WriteShareError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": req.Path})
}

// Remove handles DELETE /fs?path=. Removing a missing path succeeds.
func (h *FSHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.fs.Remove(r.Context(), r.URL.Query().Get("path")); err != nil {
		WriteShareError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Rename handles POST /fs/rename.
func (h *FSHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if err := h.fs.Rename(r.Context(), req.From, req.To, req.Replace); err != nil {
		WriteShareError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New("invalid " + name + " parameter: " + v)
	}
	return b, nil
}
