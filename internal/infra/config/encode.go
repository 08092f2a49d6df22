package config

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/payflow/internal/domain"
)

// Encode renders cfg as payflow.yaml. Secrets are never written.
func Encode(cfg domain.Config) ([]byte, error) {
	dto := FromDomain(cfg)
	dto.Processors.Stripe.APIKey = ""

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(dto); err != nil {
		return nil, &domain.OpError{Op: "config.encode", Kind: domain.KindExecution, Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &domain.OpError{Op: "config.encode", Kind: domain.KindExecution, Err: err}
	}
	return buf.Bytes(), nil
}
