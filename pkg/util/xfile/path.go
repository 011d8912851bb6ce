package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// hasDotDotSegment 检测路径中是否包含 ".." 作为独立路径段。
// 同时将 '/' 和 '\' 视为分隔符，逐字符扫描，零内存分配。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		if path[i] == '/' || path[i] == '\\' {
			i++
			continue
		}
		j := i
		for j < len(path) && path[j] != '/' && path[j] != '\\' {
			j++
		}
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}

// SanitizePath 对文件路径进行格式检查和规范化
//
// 拒绝空路径、空字节、显式目录路径（尾随 "/" 或 "\"）以及规范化后
// 仍包含 ".." 段的相对路径。绝对路径中的 ".." 由 filepath.Clean 正常解析。
//
// 本函数只做格式净化，不把路径限制在某个目录内。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}
	// 必须在 Clean 之前检查，Clean 会移除尾部分隔符
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in filename: %w", ErrPathTraversal)
	}

	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}
	return cleaned, nil
}

// CleanDir 对配置中的目录路径进行格式检查和规范化
//
// 只做空值和空字节检查，允许尾随分隔符、"." 和 ".." 路径段。
// 目录来自运维配置而非外部输入，"../logs" 之类的相对目录是合法的。
func CleanDir(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("directory is required: %w", ErrEmptyPath)
	}
	if containsNullByte(dir) {
		return "", fmt.Errorf("directory contains null byte: %w", ErrNullByte)
	}
	return filepath.Clean(dir), nil
}

// CheckFileName 检查单个文件名片段（不含目录）
//
// 用于校验拼接进文件名的配置值（如实例名、文件后缀）。
// allowEmpty 为 true 时空字符串视为合法（后缀可为空）。
func CheckFileName(name string, allowEmpty bool) error {
	if name == "" {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("file name is required: %w", ErrEmptyPath)
	}
	if containsNullByte(name) {
		return fmt.Errorf("file name contains null byte: %w", ErrNullByte)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("file name %q contains path separator: %w", name, ErrInvalidPath)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("file name %q: %w", name, ErrInvalidPath)
	}
	return nil
}
