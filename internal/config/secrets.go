package config

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/sirupsen/logrus"
)

// SecretReader returns the latest version of a named secret
type SecretReader interface {
	Secret(ctx context.Context, name string) (string, error)
}

// GCPSecrets reads secrets from Google Cloud Secret Manager
type GCPSecrets struct {
	client    *secretmanager.Client
	projectID string
}

func NewGCPSecrets(ctx context.Context, projectID string) (*GCPSecrets, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}
	return &GCPSecrets{client: client, projectID: projectID}, nil
}

func (g *GCPSecrets) Secret(ctx context.Context, name string) (string, error) {
	result, err := g.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", g.projectID, name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", name, err)
	}
	return string(result.Payload.Data), nil
}

func (g *GCPSecrets) Close() error {
	return g.client.Close()
}

// ApplySecrets overrides the database password and JWT secret with values from reader.
// A secret that cannot be read keeps the environment value.
func (c *Config) ApplySecrets(ctx context.Context, reader SecretReader, log *logrus.Logger) {
	targets := []struct {
		name string
		dst  *string
	}{
		{c.DBPasswordSecretName, &c.DBPassword},
		{c.JWTSecretName, &c.JWTSecret},
	}
	for _, t := range targets {
		if t.name == "" {
			continue
		}
		v, err := reader.Secret(ctx, t.name)
		if err != nil {
			log.WithError(err).WithField("secret", t.name).Warn("Falling back to environment value")
			continue
		}
		*t.dst = v
	}
}
