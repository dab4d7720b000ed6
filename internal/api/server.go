package api

import (
	"mime/multipart"
	"strings"

	"go.uber.org/zap"

	"sakura/internal/blob"
	"sakura/internal/reference"
	"sakura/internal/schema"
)

type UploadOptions struct {
	URLPrefix  string // "/uploads"
	DefaultExt string // ".jpg"
	MaxBytes   int64  // 0 — без лимита
}

// Server — всё, что нужно хендлерам
type Server struct {
	Enums   *schema.Source
	Mapping []reference.Attribute
	Blob    blob.Store
	Uploads UploadOptions
	Log     *zap.Logger
}

func NewServer(enums *schema.Source, store blob.Store, uploads UploadOptions, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Enums:   enums,
		Mapping: reference.Mapping,
		Blob:    store,
		Uploads: uploads,
		Log:     log,
	}
}

func (s *Server) storeUpload(fh *multipart.FileHeader) (blob.Object, error) {
	f, err := fh.Open()
	if err != nil {
		return blob.Object{}, err
	}
	defer f.Close()
	return s.Blob.Put(blob.NewName(fh.Filename, s.Uploads.DefaultExt), f)
}

func (s *Server) publicURL(name string) string {
	return strings.TrimRight(s.Uploads.URLPrefix, "/") + "/" + name
}
