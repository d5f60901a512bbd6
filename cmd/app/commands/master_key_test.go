package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/tokenvault/internal/crypto/domain"
)

// Manual mocks for KMS since the keeper is normally backed by gocloud.dev
type MockKMSService struct {
	mock.Mock
}

func (m *MockKMSService) OpenKeeper(ctx context.Context, uri string) (cryptoDomain.KMSKeeper, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cryptoDomain.KMSKeeper), args.Error(1)
}

type MockKMSKeeper struct {
	mock.Mock
}

func (m *MockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKMSKeeper) Close() error {
	return m.Called().Error(0)
}

func TestRunCreateMasterKey(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("env-mode", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCreateMasterKey(ctx, nil, logger, &out, "test-key", "env", "")

		require.NoError(t, err)
		require.Contains(t, out.String(), "MASTER_KEY_PROVIDER=\"env\"")
		require.Contains(t, out.String(), "MASTER_KEYS=\"test-key:")
	})

	t.Run("env-mode-default-reference", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCreateMasterKey(ctx, nil, logger, &out, "", "env", "")

		require.NoError(t, err)
		require.Contains(t, out.String(), "MASTER_KEYS=\"master-key-")
	})

	t.Run("kms-mode", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockKeeper := &MockKMSKeeper{}

		mockService.On("OpenKeeper", ctx, "base64key://...").Return(mockKeeper, nil)
		mockKeeper.On("Encrypt", ctx, mock.AnythingOfType("[]uint8")).Return([]byte("encrypted"), nil)
		mockKeeper.On("Close").Return(nil)

		var out bytes.Buffer
		err := RunCreateMasterKey(ctx, mockService, logger, &out, "test-key", "kms", "base64key://...")

		require.NoError(t, err)
		require.Contains(t, out.String(), "MASTER_KEY_PROVIDER=\"kms\"")
		require.Contains(t, out.String(), "KMS_KEY_URI=\"base64key://...\"")
		require.Contains(t, out.String(), "MASTER_KEYS=\"test-key:")

		mockService.AssertExpectations(t)
		mockKeeper.AssertExpectations(t)
	})

	t.Run("missing-provider", func(t *testing.T) {
		err := RunCreateMasterKey(ctx, nil, logger, nil, "", "", "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "required")
	})

	t.Run("kms-mode-missing-uri", func(t *testing.T) {
		err := RunCreateMasterKey(ctx, nil, logger, &bytes.Buffer{}, "test-key", "kms", "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "--kms-key-uri is required")
	})

	t.Run("kms-error", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockService.On("OpenKeeper", ctx, "invalid").Return(nil, errors.New("kms error"))

		err := RunCreateMasterKey(ctx, mockService, logger, &bytes.Buffer{}, "test-key", "kms", "invalid")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to open KMS keeper")
	})

	t.Run("unsupported-provider", func(t *testing.T) {
		err := RunCreateMasterKey(ctx, nil, logger, &bytes.Buffer{}, "test-key", "vault", "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported provider")
	})
}
