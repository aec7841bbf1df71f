package postgresosm

import (
	"strings"
)

// parseOneway разбирает тег oneway. Значение -1 означает движение
// против порядка узлов дороги
func parseOneway(val string) (oneway, reverse bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "yes", "true", "1":
		return true, false
	case "-1", "reverse":
		return true, true
	default:
		return false, false
	}
}

// chunkIDs делит идентификаторы на пачки не больше size
func chunkIDs(ids []int64, size int) [][]int64 {
	if len(ids) == 0 {
		return nil
	}
	chunks := make([][]int64, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

func reverseIDs(ids []int64) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}
