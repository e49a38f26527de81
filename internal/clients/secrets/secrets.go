package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// api is the subset of the Secrets Manager client the reader uses.
type api interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Reader retrieves the reputation API credential from a named secret.
type Reader interface {
	APIKey(ctx context.Context) (string, error)
}

// reader is the concrete implementation of the Reader interface. The key is
// cached for the lifetime of the process, matching the secret's rotation
// model (manual, with a redeploy).
type reader struct {
	client api
	name   string

	mu     sync.Mutex
	cached string
}

// NewReader creates a new Reader for the named secret.
func NewReader(cfg aws.Config, name string) Reader {
	return &reader{
		client: secretsmanager.NewFromConfig(cfg),
		name:   name,
	}
}

// NewReaderWithClient creates a new Reader with an explicit client. Used in tests.
func NewReaderWithClient(client api, name string) Reader {
	return &reader{client: client, name: name}
}

// APIKey returns the credential stored in the secret's "api_key" field.
func (r *reader) APIKey(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != "" {
		return r.cached, nil
	}

	out, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(r.name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get secret '%s': %w", r.name, err)
	}

	var payload struct {
		APIKey string `json:"api_key"`
	}
	if err := json.Unmarshal([]byte(aws.ToString(out.SecretString)), &payload); err != nil {
		return "", fmt.Errorf("failed to parse secret '%s': %w", r.name, err)
	}
	if payload.APIKey == "" {
		return "", fmt.Errorf("secret '%s' has no api_key field", r.name)
	}

	r.cached = payload.APIKey
	return r.cached, nil
}
