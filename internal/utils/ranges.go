package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMalformedRange Range 头数值无法解析
var ErrMalformedRange = errors.New("无法解析的 Range 头")

// RangeKind Range 解析结果类别
type RangeKind int

const (
	RangeFull          RangeKind = iota // 无 Range 头或前缀不符，返回完整文件
	RangePartial                        // 有效单区间
	RangeUnsatisfiable                  // 语法有效但越界，应答 416
)

// ByteRange Range 头解析结果，Kind 为 RangePartial 时 [Start, End] 闭区间有效
type ByteRange struct {
	Kind  RangeKind
	Start int64
	End   int64
}

// ContentLength 区间覆盖的字节数
func (r ByteRange) ContentLength() int64 {
	return r.End - r.Start + 1
}

// ParseRange 按已知文件大小解析 HTTP Range 头
// 仅支持单区间：bytes=a-b,c-d 这类多区间请求只取第一个逗号之前的片段。
// 起始值缺失或无法解析按格式错误处理，与越界（Unsatisfiable）区分开。
func ParseRange(header string, fileSize int64) (ByteRange, error) {
	if !strings.HasPrefix(header, "bytes=") {
		return ByteRange{Kind: RangeFull}, nil
	}

	spec := strings.TrimPrefix(header, "bytes=")
	if idx := strings.Index(spec, ","); idx >= 0 {
		spec = spec[:idx]
	}

	parts := strings.SplitN(spec, "-", 2)
	start, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || start < 0 {
		return ByteRange{}, ErrMalformedRange
	}

	end := fileSize - 1
	if len(parts) > 1 && parts[1] != "" {
		end, err = strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return ByteRange{}, ErrMalformedRange
		}
	}

	if start >= fileSize || end >= fileSize || start > end {
		return ByteRange{Kind: RangeUnsatisfiable}, nil
	}

	return ByteRange{Kind: RangePartial, Start: start, End: end}, nil
}
