// Package assets resolves image references from note frontmatter and
// uploads them to object storage. Every failure path degrades to keeping
// the raw field value; an image problem never fails the owning note.
package assets

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/starford/wunjo/internal/ident"
	"github.com/starford/wunjo/internal/objstore"
	"github.com/starford/wunjo/internal/parser"
	"github.com/starford/wunjo/internal/vault"
)

var (
	httpRe      = regexp.MustCompile(`(?i)^https?://`)
	unsafeRunRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
	hyphenRunRe = regexp.MustCompile(`-+`)
)

// SafeFileName converts an arbitrary file name into a storage-safe one:
// NFKC-normalized, restricted to [A-Za-z0-9._-], hyphen runs collapsed,
// leading/trailing hyphens and dots trimmed. A name that sanitizes to
// nothing falls back to the deterministic id of the original name, keeping
// the original extension either way.
func SafeFileName(original string) string {
	rawExt := filepath.Ext(original)
	ext := strings.ToLower(rawExt)
	base := strings.TrimSuffix(original, rawExt)

	safe := norm.NFKC.String(base)
	safe = unsafeRunRe.ReplaceAllString(safe, "-")
	safe = hyphenRunRe.ReplaceAllString(safe, "-")
	safe = strings.Trim(safe, "-.")

	if safe == "" {
		safe = ident.FromFileName(original)
	}
	return safe + ext
}

// ContentTypeFor maps a file path to its image MIME type; unknown
// extensions get a generic binary type.
func ContentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".avif":
		return "image/avif"
	default:
		return "application/octet-stream"
	}
}

// Uploader resolves image field values against the vault and uploads local
// files to object storage.
type Uploader struct {
	vault  *vault.Vault
	store  objstore.Provider
	logger *slog.Logger
}

// NewUploader creates an Uploader.
func NewUploader(v *vault.Vault, store objstore.Provider, logger *slog.Logger) *Uploader {
	return &Uploader{vault: v, store: store, logger: logger}
}

// ResolveImage turns a raw image field value into the value to persist:
//
//   - empty input: nil
//   - http(s) URL: unchanged
//   - embed reference or relative path to a local image: uploaded under
//     "<prefix>/<safe name>", public URL returned
//   - anything unresolvable or failing to upload: the raw value, unchanged
func (u *Uploader) ResolveImage(ctx context.Context, raw, notePath, prefix, field string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if httpRe.MatchString(trimmed) {
		return &trimmed
	}

	candidate := parser.UnwrapEmbed(trimmed)
	if candidate == "" {
		candidate = trimmed
	}

	if !parser.LooksLikeImageRef(candidate) {
		// Not a file reference; keep whatever label or link the note holds.
		return &trimmed
	}

	localPath, ok := u.vault.ResolveAsset(candidate, notePath)
	if !ok {
		u.logger.Warn("image file not found, keeping raw value",
			slog.String("field", field),
			slog.String("ref", candidate),
			slog.String("note", notePath))
		return &trimmed
	}

	data, err := u.vault.Read(localPath)
	if err != nil {
		u.logger.Warn("image read failed, keeping raw value",
			slog.String("field", field),
			slog.String("path", localPath),
			slog.String("error", err.Error()))
		return &trimmed
	}

	fileName := filepath.Base(localPath)
	key := prefix + "/" + SafeFileName(fileName)

	if err := u.store.EnsureBucket(ctx); err != nil {
		u.logger.Error("upload skipped, bucket unavailable",
			slog.String("field", field),
			slog.String("error", err.Error()))
		return &trimmed
	}

	if err := u.store.Upload(ctx, key, data, ContentTypeFor(localPath)); err != nil {
		u.logger.Error("image upload failed, keeping raw value",
			slog.String("field", field),
			slog.String("key", key),
			slog.String("error", err.Error()))
		return &trimmed
	}

	url := u.store.PublicURL(key)
	if url == "" {
		u.logger.Warn("no public URL for uploaded image, keeping raw value",
			slog.String("field", field),
			slog.String("key", key))
		return &trimmed
	}

	u.logger.Info("image uploaded",
		slog.String("field", field),
		slog.String("file", fileName),
		slog.String("key", key))
	return &url
}
