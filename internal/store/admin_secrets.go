package store

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Secrets path
// projects/{project}/secrets/{secretID}/versions/latest

const (
	adminPasswordHashSecretID = "admin-password-hash"
	jwtSigningSecretID        = "jwt-signing-secret"
)

type adminSecretsStore struct {
	client    *secretmanager.Client
	projectID string
}

func NewAdminSecretsStore(client *secretmanager.Client, projectID string) *adminSecretsStore {
	return &adminSecretsStore{
		client:    client,
		projectID: projectID,
	}
}

func (s *adminSecretsStore) secretVersion(secretID string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, secretID)
}

func (s *adminSecretsStore) access(ctx context.Context, secretID string) (string, error) {
	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: s.secretVersion(secretID),
	})
	if err != nil {
		return "", err
	}
	return string(res.Payload.Data), nil
}

// AdminPasswordHash returns the bcrypt hash gating the admin editor.
func (s *adminSecretsStore) AdminPasswordHash(ctx context.Context) (string, error) {
	return s.access(ctx, adminPasswordHashSecretID)
}

// JWTSigningSecret returns the HS256 secret for admin tokens.
func (s *adminSecretsStore) JWTSigningSecret(ctx context.Context) (string, error) {
	return s.access(ctx, jwtSigningSecretID)
}
