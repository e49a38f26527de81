package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ansa-dev/ansa/internal/clients/reputation"
	"github.com/ansa-dev/ansa/internal/clients/secrets"
	"github.com/ansa-dev/ansa/internal/datastore"
	"github.com/ansa-dev/ansa/internal/handler"
	"github.com/ansa-dev/ansa/internal/notifier"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/viper"
)

var (
	datastoreNewStore   = datastore.NewStore
	notifierNew         = notifier.New
	secretsNewReader    = secrets.NewReader
	reputationNewClient = reputation.NewClient
)

// handlerConfig resolves the handler's configuration from viper once, so the
// handler itself never touches process-wide configuration.
func handlerConfig() handler.Config {
	return handler.Config{
		SpamCheckEnabled: viper.GetBool("spamcheck.enabled"),
		SpamLineTypes:    viper.GetStringSlice("spamcheck.spam_line_types"),
		ReviewLineTypes:  viper.GetStringSlice("spamcheck.review_line_types"),
		FlagInvalid:      viper.GetBool("spamcheck.flag_invalid"),
		SubjectTemplate:  viper.GetString("notifier.subject_template"),
		BodyTemplate:     viper.GetString("notifier.body_template"),
	}
}

// buildReputationClient wires the reputation lookup client to its credential
// source.
func buildReputationClient(ctx context.Context) (reputation.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	keys := secretsNewReader(awsCfg, viper.GetString("spamcheck.secret_name"))
	return reputationNewClient(
		viper.GetString("spamcheck.endpoint"),
		viper.GetDuration("spamcheck.timeout"),
		keys,
	), nil
}

// buildHandler assembles the action handler and its dependencies from
// configuration. The returned cleanup function releases the datastore.
func buildHandler(ctx context.Context) (*handler.Handler, func(), error) {
	store, err := datastoreNewStore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create a new datastore: %w", err)
	}

	n, err := notifierNew(ctx)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to create a notifier: %w", err)
	}

	rep, err := buildReputationClient(ctx)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close datastore", "error", err)
		}
	}

	return handler.New(handlerConfig(), store, n, rep), cleanup, nil
}
