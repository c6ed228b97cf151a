package shader

// ShaderBuilderOption is a functional option for NewShader.
type ShaderBuilderOption func(c *shaderConfig)

type shaderConfig struct {
	preProcessor PreProcessor
}

// WithPreProcessor uses pp instead of a fresh default pre-processor, so that
// custom snippets registered on pp are available to include annotations.
//
// Parameters:
//   - pp: the pre-processor to use
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithPreProcessor(pp PreProcessor) ShaderBuilderOption {
	return func(c *shaderConfig) {
		c.preProcessor = pp
	}
}
