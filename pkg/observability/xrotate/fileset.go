package xrotate

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	// DefaultFilePerm 日志文件默认权限
	DefaultFilePerm os.FileMode = 0640

	// fileBufferSize 每个文件的写缓冲大小
	fileBufferSize = 64 * 1024
)

// logFile 文件组中的一个打开文件
type logFile struct {
	category Category
	path     string
	file     *os.File
	buf      *bufio.Writer
	written  int64 // 本文件已写入字节数（含缓冲中未落盘的部分）
}

// write 追加一行
//
// 计数先于写入累加，写入失败时计数不回退，与大小触发的估算语义一致。
func (f *logFile) write(line string) error {
	f.written += int64(len(line))
	if _, err := f.buf.WriteString(line); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIOFailure, f.path, err)
	}
	return nil
}

// flush 把缓冲写入内核并落盘
func (f *logFile) flush() error {
	if err := f.buf.Flush(); err != nil {
		return fmt.Errorf("%w: flush %s: %w", ErrIOFailure, f.path, err)
	}
	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", ErrIOFailure, f.path, err)
	}
	return nil
}

// fileSet 当前生效的一组文件，与 RollConfig.Outputs 一一对应、顺序一致
type fileSet struct {
	validUntil time.Time
	files      []*logFile
}

// openFileSet 为每个输出独占创建新文件
//
// 全部成功才返回文件组。任一失败时关闭本次已打开的句柄并返回错误，
// 已创建的空文件保留在磁盘上。
func openFileSet(cfg *RollConfig, now time.Time, perm os.FileMode) (*fileSet, error) {
	files := make([]*logFile, 0, len(cfg.Outputs))
	for _, o := range cfg.Outputs {
		path := o.path(cfg.BaseName, now)
		//#nosec G304 -- 路径由校验过的配置拼接
		fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if err != nil {
			for _, f := range files {
				_ = f.file.Close() //nolint:errcheck // 空文件，关闭失败无可恢复
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrFileInit, path, err)
		}
		files = append(files, &logFile{
			category: o.Category,
			path:     path,
			file:     fh,
			buf:      bufio.NewWriterSize(fh, fileBufferSize),
		})
	}
	return &fileSet{
		validUntil: nextRollTime(now, cfg.RollInterval),
		files:      files,
	}, nil
}

// target 返回分类对应的文件，没有精确匹配时返回最后一个
func (s *fileSet) target(category Category) *logFile {
	for _, f := range s.files {
		if f.category == category {
			return f
		}
	}
	if len(s.files) == 0 {
		// 配置校验保证至少一个输出
		panic("xrotate: file set has no files")
	}
	return s.files[len(s.files)-1]
}

// flush 刷新所有文件，错误通过 report 上报，不中断其余文件
func (s *fileSet) flush(report func(error)) {
	for _, f := range s.files {
		if err := f.flush(); err != nil {
			report(err)
		}
	}
}

// close 刷新并关闭所有文件
func (s *fileSet) close(report func(error)) {
	for _, f := range s.files {
		err := f.flush()
		if cerr := f.file.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("%w: close %s: %w", ErrIOFailure, f.path, cerr))
		}
		if err != nil {
			report(err)
		}
	}
}

// paths 返回文件路径，顺序与输出一致
func (s *fileSet) paths() []string {
	out := make([]string, len(s.files))
	for i, f := range s.files {
		out[i] = f.path
	}
	return out
}
