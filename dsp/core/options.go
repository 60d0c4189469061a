package core

// ProcessorConfig defines common settings shared by signal generation and
// spectrum analysis.
type ProcessorConfig struct {
	SampleRate float64
	FrameSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the defaults used by the noise demo:
// 48 kHz sample rate and 1024-sample analysis frames.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		FrameSize:  1024,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFrameSize sets the analysis frame size in samples.
func WithFrameSize(frameSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if frameSize > 0 {
			cfg.FrameSize = frameSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
