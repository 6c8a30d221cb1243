package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrInvalidFileType 不在白名单内的文件类型
var ErrInvalidFileType = errors.New("不支持的文件类型")

var allowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/avi":       true,
	"video/quicktime": true,
	"video/wmv":       true,
	"video/flv":       true,
	"video/webm":      true,
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadResult 上传结果
type UploadResult struct {
	FileName    string `json:"file_name"`
	FileURL     string `json:"file_url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// UploadService 文件上传服务
type UploadService struct {
	uploadDir string
}

// NewUploadService 创建上传服务
func NewUploadService(uploadDir string) *UploadService {
	return &UploadService{uploadDir: uploadDir}
}

// SaveVideo 保存视频文件
func (s *UploadService) SaveVideo(file *multipart.FileHeader) (*UploadResult, error) {
	if file == nil || file.Size == 0 || !allowedVideoTypes[file.Header.Get("Content-Type")] {
		return nil, ErrInvalidFileType
	}
	return s.save(file, "videos")
}

// SaveImage 保存图片文件
func (s *UploadService) SaveImage(file *multipart.FileHeader) (*UploadResult, error) {
	if file == nil || file.Size == 0 || !allowedImageTypes[file.Header.Get("Content-Type")] {
		return nil, ErrInvalidFileType
	}
	return s.save(file, "images")
}

// Delete 删除已上传文件（文件名先过清洗，不允许带路径）
func (s *UploadService) Delete(subDir, fileName string) error {
	path := filepath.Join(s.uploadDir, subDir, filepath.Base(fileName))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}

// save 统一保存：uuid 文件名保留原扩展名，目录不存在则创建
func (s *UploadService) save(file *multipart.FileHeader, subDir string) (*UploadResult, error) {
	dir := filepath.Join(s.uploadDir, subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}

	fileName := uuid.NewString() + filepath.Ext(file.Filename)
	dstPath := filepath.Join(dir, fileName)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("读取上传文件失败: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("写入上传文件失败: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("写入上传文件失败: %w", err)
	}

	return &UploadResult{
		FileName:    fileName,
		FileURL:     "/uploads/" + subDir + "/" + fileName,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
	}, nil
}
