//go:build !unix

package rice

func winsizeCellMetrics() (CellMetrics, bool) {
	return CellMetrics{}, false
}
