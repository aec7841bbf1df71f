package cache

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

// initCodec создает общие кодировщик и декодировщик, EncodeAll и DecodeAll
// безопасны для параллельного использования
func initCodec() error {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	})
	return codecErr
}

// marshalCompressed сериализует значение в JSON и сжимает zstd
func marshalCompressed(v interface{}) ([]byte, error) {
	if err := initCodec(); err != nil {
		return nil, fmt.Errorf("init zstd: %w", err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

// unmarshalCompressed распаковывает данные zstd и разбирает JSON
func unmarshalCompressed(data []byte, v interface{}) error {
	if err := initCodec(); err != nil {
		return fmt.Errorf("init zstd: %w", err)
	}
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}
