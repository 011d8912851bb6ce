//go:build !unix

package xsys

// RaiseFileLimit 在非 Unix 平台上返回 ErrUnsupportedPlatform。
func RaiseFileLimit(limit uint64) (uint64, error) {
	if limit == 0 {
		return 0, ErrInvalidFileLimit
	}
	return 0, ErrUnsupportedPlatform
}

// FileLimit 在非 Unix 平台上返回 ErrUnsupportedPlatform。
func FileLimit() (soft, hard uint64, err error) {
	return 0, 0, ErrUnsupportedPlatform
}
