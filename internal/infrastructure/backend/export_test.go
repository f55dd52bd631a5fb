package backend

// SetMaxDownload baja el límite de descarga durante un test.
func SetMaxDownload(n int64) (restore func()) {
	prev := maxDownload
	maxDownload = n
	return func() { maxDownload = prev }
}
