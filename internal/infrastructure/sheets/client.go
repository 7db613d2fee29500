package sheets

import (
	"context"
	"fmt"
	"os"

	"github.com/sheets-otp/internal/config"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// NewService creates a read-only Google Sheets client. When cfg.SheetsEndpoint is set
// it overrides the API endpoint, and the client is unauthenticated if no credentials
// are configured (local emulator).
func NewService(ctx context.Context, cfg *config.Config) (*sheetsapi.Service, error) {
	creds, err := credentialsJSON(cfg)
	if err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if len(creds) > 0 {
		c, err := google.CredentialsFromJSON(ctx, creds, sheetsapi.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("parse google credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(c))
	} else {
		opts = append(opts, option.WithoutAuthentication())
	}
	if cfg.SheetsEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.SheetsEndpoint))
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return svc, nil
}

// credentialsJSON returns the inline credentials, else the content of the credentials file.
func credentialsJSON(cfg *config.Config) ([]byte, error) {
	if cfg.GoogleCredentials != "" {
		return []byte(cfg.GoogleCredentials), nil
	}
	if cfg.GoogleCredentialsFile != "" {
		b, err := os.ReadFile(cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read google credentials: %w", err)
		}
		return b, nil
	}
	return nil, nil
}
