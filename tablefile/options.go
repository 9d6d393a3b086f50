package tablefile

import (
	"github.com/arloliu/coltable/compress"
	"github.com/arloliu/coltable/format"
	"github.com/arloliu/coltable/internal/options"
)

// config holds WriteCompressed's settings, built from an
// Option slice through the teacher's internal/options functional-options
// pattern.
type config struct {
	compression format.CompressionType
}

// Option configures WriteCompressed.
type Option = options.Option[*config]

// WithCompression selects the codec WriteCompressed runs the payload block
// through. The zero value (format.CompressionNone) is the default if no
// option is given.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *config) error {
		c.compression = ct

		return nil
	})
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) codec() (compress.Codec, error) {
	return compress.GetCodec(c.compression)
}
