package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/kicksup/kicksup/pkg/ctx"
	"github.com/kicksup/kicksup/pkg/logger"
	"github.com/kicksup/kicksup/pkg/storage"
)

// DefaultUploadLimit caps an image upload when UPLOAD_MAX_BYTES is unset.
const DefaultUploadLimit = 5 << 20

// UploadResponse tells the client where the file landed. URL is what goes
// into imageUrl or profileImageUrl.
type UploadResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type UploadController struct {
	disk     func() storage.Disk
	maxBytes int64
}

// NewUploadController stores files on the disk returned by disk, resolved per
// request so tests and boot can swap the default.
func NewUploadController(disk func() storage.Disk, maxBytes int64) *UploadController {
	if maxBytes <= 0 {
		maxBytes = DefaultUploadLimit
	}
	return &UploadController{disk: disk, maxBytes: maxBytes}
}

// Image handles POST /api/uploads/images with a multipart "file" field.
func (uc *UploadController) Image(c *ctx.Context) {
	file, _, err := c.FormFile("file", uc.maxBytes)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.Error(http.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds %d bytes", uc.maxBytes))
			return
		}
		c.ValidationError(map[string]string{"file": "an image file is required"})
		return
	}
	defer file.Close()

	// Sniff the head of the file; the client's Content-Type is not trusted.
	head := make([]byte, 3072)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		c.InternalError(err)
		return
	}
	head = head[:n]

	mime := mimetype.Detect(head)
	if n == 0 || !strings.HasPrefix(mime.String(), "image/") {
		c.ValidationError(map[string]string{"file": "only image files are accepted"})
		return
	}

	disk := uc.disk()
	if disk == nil {
		c.InternalError(errors.New("storage: no default disk"))
		return
	}

	key := "images/" + uuid.NewString() + mime.Extension()
	body := io.MultiReader(bytes.NewReader(head), file)
	if err := disk.Put(c.Context(), key, body, mime.String()); err != nil {
		c.InternalError(err)
		return
	}

	logger.WithCtx(c.Context()).Info("image uploaded", "path", key, "type", mime.String())
	c.Created(UploadResponse{Path: key, URL: disk.URL(key)}, "")
}
