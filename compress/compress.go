// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

const LEVEL_FAST = 0
const LEVEL_WELL = 11
const WINDOW_SIZE = 22 // BROTLI_DEFAULT_WINDOW

func CompressLevel(input []byte, level int) ([]byte, error) {
	var out bytes.Buffer
	writer := brotli.NewWriterOptions(&out, brotli.WriterOptions{
		Quality: level,
		LGWin:   WINDOW_SIZE,
	})
	if _, err := writer.Write(input); err != nil {
		return nil, fmt.Errorf("failed compression: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed compression: %w", err)
	}
	return out.Bytes(), nil
}

func CompressWell(input []byte) ([]byte, error) {
	return CompressLevel(input, LEVEL_WELL)
}

func CompressFast(input []byte) ([]byte, error) {
	return CompressLevel(input, LEVEL_FAST)
}

// Decompress fails if the output would exceed maxSize bytes.
func Decompress(input []byte, maxSize int) ([]byte, error) {
	reader := brotli.NewReader(bytes.NewReader(input))
	out, err := io.ReadAll(io.LimitReader(reader, int64(maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed decompression: %w", err)
	}
	if len(out) > maxSize {
		return nil, fmt.Errorf("result too large: more than %d bytes", maxSize)
	}
	return out, nil
}
