package service

import (
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/picturesmile/studio-api/internal/models"
	"github.com/picturesmile/studio-api/pkg/utils"
)

const mb = 1 << 20

type UploadFile struct {
	Name string
	Data []byte
}

func (f *UploadFile) Size() int64 { return int64(len(f.Data)) }

// BaseName is the file name without directory or extension, used as a
// default title.
func (f *UploadFile) BaseName() string {
	base := filepath.Base(f.Name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type fileRule struct {
	maxBytes int64
	types    map[string]string
	label    string
}

type FileLimits struct {
	ImageMaxMB int
	VideoMaxMB int
	AlbumMaxMB int
}

func fileRules(l FileLimits) map[models.MediaKind]fileRule {
	return map[models.MediaKind]fileRule{
		models.KindImage: {
			maxBytes: int64(l.ImageMaxMB) * mb,
			types:    map[string]string{"image/jpeg": "jpg", "image/png": "png", "image/webp": "webp"},
			label:    "JPEG, PNG or WebP image",
		},
		models.KindVideo: {
			maxBytes: int64(l.VideoMaxMB) * mb,
			types:    map[string]string{"video/mp4": "mp4", "video/quicktime": "mov", "video/webm": "webm"},
			label:    "MP4, MOV or WebM video",
		},
		models.KindAlbum: {
			maxBytes: int64(l.AlbumMaxMB) * mb,
			types:    map[string]string{"application/pdf": "pdf"},
			label:    "PDF document",
		},
	}
}

type checkedFile struct {
	*UploadFile
	ContentType string
	Ext         string
}

// checkFile sniffs the content type from the file's bytes; the declared
// name only contributes the extension when it agrees with the content.
func checkFile(rule fileRule, field string, f *UploadFile) (*checkedFile, error) {
	if f == nil || len(f.Data) == 0 {
		return nil, invalid(field, "Please choose a file to upload.")
	}
	if f.Size() > rule.maxBytes {
		return nil, invalid(field, "%s is too large. Maximum size is %d MB.", displayName(f), rule.maxBytes/mb)
	}

	kind, err := filetype.Match(f.Data)
	if err != nil || kind == filetype.Unknown {
		return nil, invalid(field, "%s is not a supported file. Please upload a %s.", displayName(f), rule.label)
	}
	ext, ok := rule.types[kind.MIME.Value]
	if !ok {
		return nil, invalid(field, "%s is not a supported file. Please upload a %s.", displayName(f), rule.label)
	}
	if declared := utils.FileExt(f.Name); declared != "" && (declared == kind.Extension || declared == ext || (declared == "jpeg" && ext == "jpg")) {
		ext = declared
	}

	return &checkedFile{UploadFile: f, ContentType: kind.MIME.Value, Ext: ext}, nil
}

func displayName(f *UploadFile) string {
	if f.Name == "" {
		return "File"
	}
	return filepath.Base(f.Name)
}
