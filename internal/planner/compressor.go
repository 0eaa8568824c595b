package planner

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"cpd/internal/planner/interfaces"
	"cpd/internal/structures"
)

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

// NoopCompression keeps the snapshot file as plain JSON.
type NoopCompression struct{}

func (NoopCompression) Compress(val []byte) ([]byte, error)   { return val, nil }
func (NoopCompression) Decompress(val []byte) ([]byte, error) { return val, nil }
func (NoopCompression) Close()                                {}

// NewCompressor selects the snapshot encoding from config. Loading sniffs
// the file format either way, so switching the setting never loses data.
func NewCompressor(conf *structures.Config) (interfaces.CompressorInterface, error) {
	if conf.Persistence.Compression == "zstd" {
		return NewZstdCompressor()
	}
	return NoopCompression{}, nil
}
