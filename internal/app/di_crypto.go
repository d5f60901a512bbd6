package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/tokenvault/internal/crypto/domain"
	cryptoService "github.com/allisson/tokenvault/internal/crypto/service"
)

// MasterKeyStore returns the master key store loaded from the MASTER_KEYS
// environment variable. In env mode entries hold raw key material; in kms mode
// they hold KMS-wrapped blobs.
func (c *Container) MasterKeyStore() (*cryptoDomain.MasterKeyStore, error) {
	var err error
	c.masterKeyStoreInit.Do(func() {
		c.masterKeyStore, err = cryptoDomain.LoadMasterKeyStoreFromEnv()
		if err != nil {
			c.initErrors["masterKeyStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterKeyStore"]; exists {
		return nil, storedErr
	}
	return c.masterKeyStore, nil
}

// KMSService returns the KMS service for opening keepers.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// MasterKeyResolver returns the resolver that materializes master key
// references into raw key bytes, selected by MASTER_KEY_PROVIDER.
func (c *Container) MasterKeyResolver() (cryptoService.MasterKeyResolver, error) {
	var err error
	c.masterKeyResolverInit.Do(func() {
		c.masterKeyResolver, err = c.initMasterKeyResolver()
		if err != nil {
			c.initErrors["masterKeyResolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterKeyResolver"]; exists {
		return nil, storedErr
	}
	return c.masterKeyResolver, nil
}

// AEADManager returns the AEAD cipher factory.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KeyManager returns the per-tenant data key manager.
func (c *Container) KeyManager() (cryptoService.KeyManager, error) {
	var err error
	c.keyManagerInit.Do(func() {
		c.keyManager, err = c.initKeyManager()
		if err != nil {
			c.initErrors["keyManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyManager"]; exists {
		return nil, storedErr
	}
	return c.keyManager, nil
}

// HashService returns the fingerprint hash service.
func (c *Container) HashService() cryptoService.HashService {
	c.hashServiceInit.Do(func() {
		c.hashService = cryptoService.NewSHA256HashService()
	})
	return c.hashService
}

// initMasterKeyResolver creates the master key resolver based on the
// configured provider.
func (c *Container) initMasterKeyResolver() (cryptoService.MasterKeyResolver, error) {
	store, err := c.MasterKeyStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key store for resolver: %w", err)
	}

	switch c.config.MasterKeyProvider {
	case "env":
		return cryptoService.NewEnvResolver(store), nil
	case "kms":
		if c.config.KMSKeyURI == "" {
			return nil, fmt.Errorf("KMS_KEY_URI is required when MASTER_KEY_PROVIDER is kms")
		}
		keeper, err := c.KMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open kms keeper: %w", err)
		}
		// Keep a handle for shutdown
		c.kmsKeeper = keeper
		resolver := cryptoService.NewKeeperResolver(store, keeper, c.config.KeyResolveTimeout)
		if err := resolver.Warm(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to warm master keys: %w", err)
		}
		return resolver, nil
	default:
		return nil, fmt.Errorf("unsupported master key provider: %s", c.config.MasterKeyProvider)
	}
}

// initKeyManager creates the derived key manager using the master key resolver.
func (c *Container) initKeyManager() (cryptoService.KeyManager, error) {
	resolver, err := c.MasterKeyResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key resolver for key manager: %w", err)
	}
	return cryptoService.NewDerivedKeyManager(resolver), nil
}
