package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"ceylon-compass-server/config"
	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
	"ceylon-compass-server/types"
)

const maxImageSize = 5 << 20

var ErrUploadsDisabled = errors.New("image uploads are not configured")

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error)
}

type cloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewImageUploader returns a Cloudinary uploader, or nil when cfg is incomplete.
func NewImageUploader(cfg config.CloudinaryConfig) (ImageUploader, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &cloudinaryUploader{cld: cld}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	overwrite := true
	unique := true
	res, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID,
		Overwrite:      &overwrite,
		UniqueFilename: &unique,
		ResourceType:   "image",
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	return res.SecureURL, nil
}

type MediaService struct {
	uploader ImageUploader
	folder   string
	log      *zap.Logger
}

// NewMediaService accepts a nil uploader; uploads then fail with ErrUploadsDisabled.
func NewMediaService(up ImageUploader, folder string, log *zap.Logger) *MediaService {
	if folder == "" {
		folder = "ceylon-compass"
	}
	return &MediaService{
		uploader: up,
		folder:   folder,
		log:      logger.OrNop(log).Named("media"),
	}
}

// ValidateImage accepts jpg, jpeg, png and webp files up to 5MB.
func ValidateImage(h *multipart.FileHeader) error {
	if h == nil || h.Size <= 0 {
		return types.FieldError("image", "Image file is required")
	}
	if h.Size > maxImageSize {
		return types.FieldError("image", "Image must be 5MB or smaller")
	}
	switch strings.ToLower(filepath.Ext(h.Filename)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return nil
	default:
		return types.FieldError("image", "Image must be a jpg, png or webp file")
	}
}

func (s *MediaService) Upload(ctx context.Context, actor *models.User, h *multipart.FileHeader) (string, error) {
	if err := ValidateImage(h); err != nil {
		return "", err
	}
	if s.uploader == nil {
		return "", types.Internal("Image uploads are not configured", ErrUploadsDisabled)
	}

	file, err := h.Open()
	if err != nil {
		return "", types.Internal("Failed to read image", err)
	}
	defer file.Close()

	folder := s.folder + "/" + strconv.FormatUint(uint64(actor.ID), 10)
	publicID := strings.TrimSuffix(filepath.Base(h.Filename), filepath.Ext(h.Filename))
	url, err := s.uploader.Upload(ctx, file, folder, publicID)
	if err != nil {
		s.log.Warn("image upload failed", zap.Uint("user_id", actor.ID), zap.Error(err))
		return "", types.Internal("Image upload failed", err)
	}
	s.log.Info("image uploaded", zap.Uint("user_id", actor.ID), zap.String("url", url))
	return url, nil
}
