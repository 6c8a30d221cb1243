package utils

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrVideoNotFound 视频文件不存在或不是普通文件
	ErrVideoNotFound = errors.New("视频文件不存在")
	// ErrPathOutsideRoot 解析结果越出视频根目录
	ErrPathOutsideRoot = errors.New("非法的视频路径")
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ExtractFileName 从视频引用中提取文件名
// videoRef 可能是完整 URL、相对上传路径或纯文件名，统一取最后一个 / 之后的部分。
func ExtractFileName(videoRef string) string {
	if idx := strings.LastIndex(videoRef, "/"); idx >= 0 {
		return videoRef[idx+1:]
	}
	return videoRef
}

// SanitizeFileName 清洗文件名：消除路径穿越片段，保留扩展名
// 合法字符（字母、数字、.、_、-）之外的一律替换为下划线。
func SanitizeFileName(fileName string) string {
	if strings.Contains(fileName, "..") || strings.Contains(fileName, "/") || strings.Contains(fileName, "\\") {
		fileName = filepath.Base(filepath.FromSlash(fileName))
	}
	return unsafeFileChars.ReplaceAllString(fileName, "_")
}

// ResolveVideoPath 将视频引用解析为视频根目录内的绝对路径
// 越出 rootDir 返回 ErrPathOutsideRoot（错误信息不携带实际路径），
// 文件不存在或不是普通文件返回 ErrVideoNotFound。输入相同则结果确定。
func ResolveVideoPath(videoRef, rootDir string) (string, error) {
	fileName := SanitizeFileName(ExtractFileName(videoRef))

	candidate, err := filepath.Abs(filepath.Join(rootDir, fileName))
	if err != nil {
		return "", ErrPathOutsideRoot
	}
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return "", ErrPathOutsideRoot
	}

	// 前缀校验：候选路径必须落在根目录之内
	if candidate != root && !strings.HasPrefix(candidate, root+string(filepath.Separator)) {
		return "", ErrPathOutsideRoot
	}

	info, err := os.Stat(candidate)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrVideoNotFound
	}

	return candidate, nil
}
