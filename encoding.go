package rice

import "encoding/base64"

const (
	// ChunkSize is the maximum base64 payload per Kitty escape sequence.
	ChunkSize = 4096
	// base64ChunkSize raw bytes encode to exactly ChunkSize base64 characters.
	base64ChunkSize = 3 * ChunkSize / 4
)

// Base64Encode encodes src with standard padding.
func Base64Encode(src []byte) string {
	return base64.StdEncoding.EncodeToString(src)
}

// ChunkedBase64Encode splits data into rawChunk sized pieces and encodes each.
// rawChunk must be a multiple of 3 so only the last piece carries padding and
// the concatenation equals Base64Encode(data).
func ChunkedBase64Encode(data []byte, rawChunk int) []string {
	if len(data) == 0 {
		return nil
	}
	numChunks := (len(data) + rawChunk - 1) / rawChunk
	results := make([]string, 0, numChunks)

	for i := 0; i < len(data); i += rawChunk {
		end := min(i+rawChunk, len(data))
		results = append(results, Base64Encode(data[i:end]))
	}
	return results
}
