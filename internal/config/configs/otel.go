package configs

import "fmt"

// Otel configures export of request traces over OTLP/HTTP. When Enabled is
// false no provider is installed and spans are dropped by the global no-op
// tracer.
type Otel struct {
	// Enabled installs the tracer provider at startup.
	Enabled bool `env:"ENABLED" envDefault:"false"`
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `env:"SERVICE_NAME" envDefault:"engage-escrow"`
	// Endpoint is the host:port of the OTLP/HTTP collector.
	Endpoint string `env:"ENDPOINT" envDefault:"localhost:4318"`
	// Insecure disables TLS towards the collector.
	Insecure bool `env:"INSECURE" envDefault:"true"`
	// Headers are extra exporter headers in "key=value,key=value" form,
	// typically collector credentials.
	Headers string `env:"HEADERS"`
	// SampleRatio is the fraction of root spans kept, between 0 and 1.
	SampleRatio float64 `env:"SAMPLE_RATIO" envDefault:"1"`
}

// Validate checks the sampling ratio.
func (c Otel) Validate() error {
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("otel sample ratio %v out of range", c.SampleRatio)
	}
	return nil
}
