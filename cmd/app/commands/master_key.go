package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"time"

	cryptoService "github.com/allisson/tokenvault/internal/crypto/service"
)

// RunCreateMasterKey generates a cryptographically secure 32-byte master key
// for deriving per-tenant data keys. Key material is zeroed from memory after
// encoding. If keyRef is empty, generates a default reference in format
// "master-key-YYYY-MM-DD".
//
// With provider="env", the raw key is base64-encoded directly into the
// MASTER_KEYS output. With provider="kms", the key is encrypted with the KMS
// keeper at kmsKeyURI before encoding, and the service resolves it by
// unwrapping at startup.
//
// Security: Never commit env-mode output to version control. Use KMS mode with
// a cloud provider (gcpkms, awskms, azurekeyvault, hashivault) in production.
func RunCreateMasterKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	keyRef string,
	provider string,
	kmsKeyURI string,
) error {
	if provider == "" {
		return fmt.Errorf(
			"--provider is required\n\nFor local development, use:\n  --provider=env\n\nFor production, use KMS mode:\n  --provider=kms --kms-key-uri=\"gcpkms://projects/.../cryptoKeys/...\"\n  --provider=kms --kms-key-uri=\"awskms:///alias/...\"\n  --provider=kms --kms-key-uri=\"base64key://<32-byte-base64-key>\" (local testing only)",
		)
	}

	if keyRef == "" {
		keyRef = fmt.Sprintf("master-key-%s", time.Now().Format("2006-01-02"))
	}

	// Generate a cryptographically secure 32-byte master key
	masterKey := make([]byte, 32)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer func() {
		for i := range masterKey {
			masterKey[i] = 0
		}
	}()

	switch provider {
	case "env":
		encodedKey := base64.StdEncoding.EncodeToString(masterKey)

		_, _ = fmt.Fprintln(writer, "# Master Key Configuration (env mode)")
		_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintln(writer, "MASTER_KEY_PROVIDER=\"env\"")
		_, _ = fmt.Fprintf(writer, "MASTER_KEYS=\"%s:%s\"\n", keyRef, encodedKey)
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintln(writer, "# For key rotation, append new keys and point new tenants at them:")
		_, _ = fmt.Fprintf(writer, "# MASTER_KEYS=\"%s:...,new-key:base64-encoded-key\"\n", keyRef)

	case "kms":
		if kmsKeyURI == "" {
			return fmt.Errorf("--kms-key-uri is required when --provider=kms")
		}

		keeperInterface, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
		if err != nil {
			return fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() {
			if closeErr := keeperInterface.Close(); closeErr != nil {
				logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
			}
		}()

		// The unwrap-only keeper interface omits Encrypt; assert for it here
		keeper, ok := keeperInterface.(interface {
			Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
		})
		if !ok {
			return fmt.Errorf("KMS keeper does not support encryption")
		}

		ciphertext, err := keeper.Encrypt(ctx, masterKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
		}
		encodedKey := base64.StdEncoding.EncodeToString(ciphertext)

		_, _ = fmt.Fprintln(writer, "# Master Key Configuration (KMS mode)")
		_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintln(writer, "MASTER_KEY_PROVIDER=\"kms\"")
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
		_, _ = fmt.Fprintf(writer, "MASTER_KEYS=\"%s:%s\"\n", keyRef, encodedKey)
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintln(writer, "# For key rotation, encrypt each new key with the same KMS key:")
		_, _ = fmt.Fprintf(writer, "# MASTER_KEYS=\"%s:...,new-key:base64-encoded-kms-ciphertext\"\n", keyRef)

	default:
		return fmt.Errorf("unsupported provider %q: must be env or kms", provider)
	}

	logger.Info("master key generated", slog.String("key_reference", keyRef), slog.String("provider", provider))

	return nil
}
