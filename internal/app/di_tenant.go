package app

import (
	"fmt"

	tenantHTTP "github.com/allisson/tokenvault/internal/tenant/http"
	tenantRepository "github.com/allisson/tokenvault/internal/tenant/repository"
	tenantService "github.com/allisson/tokenvault/internal/tenant/service"
	tenantUsecase "github.com/allisson/tokenvault/internal/tenant/usecase"
)

// TenantRepository returns the tenant repository based on database driver.
func (c *Container) TenantRepository() (tenantUsecase.TenantRepository, error) {
	var err error
	c.tenantRepoInit.Do(func() {
		c.tenantRepo, err = c.initTenantRepository()
		if err != nil {
			c.initErrors["tenantRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tenantRepo"]; exists {
		return nil, storedErr
	}
	return c.tenantRepo, nil
}

// CredentialService returns the API credential service.
func (c *Container) CredentialService() tenantService.CredentialService {
	c.credentialServiceInit.Do(func() {
		c.credentialService = tenantService.NewCredentialService()
	})
	return c.credentialService
}

// TenantUseCase returns the tenant use case instance.
func (c *Container) TenantUseCase() (tenantUsecase.TenantUseCase, error) {
	var err error
	c.tenantUseCaseInit.Do(func() {
		c.tenantUseCase, err = c.initTenantUseCase()
		if err != nil {
			c.initErrors["tenantUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tenantUseCase"]; exists {
		return nil, storedErr
	}
	return c.tenantUseCase, nil
}

// TenantHandler returns the tenant HTTP handler instance.
func (c *Container) TenantHandler() (*tenantHTTP.TenantHandler, error) {
	var err error
	c.tenantHandlerInit.Do(func() {
		c.tenantHandler, err = c.initTenantHandler()
		if err != nil {
			c.initErrors["tenantHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tenantHandler"]; exists {
		return nil, storedErr
	}
	return c.tenantHandler, nil
}

// initTenantRepository creates the tenant repository based on the database driver.
func (c *Container) initTenantRepository() (tenantUsecase.TenantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tenant repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return tenantRepository.NewPostgreSQLTenantRepository(db), nil
	case "mysql":
		return tenantRepository.NewMySQLTenantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTenantUseCase creates the tenant use case with all its dependencies.
func (c *Container) initTenantUseCase() (tenantUsecase.TenantUseCase, error) {
	tenantRepo, err := c.TenantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant repository for tenant use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for tenant use case: %w", err)
	}

	useCase := tenantUsecase.NewTenantUseCase(tenantRepo, c.CredentialService())

	return tenantUsecase.NewTenantUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initTenantHandler creates the tenant HTTP handler.
func (c *Container) initTenantHandler() (*tenantHTTP.TenantHandler, error) {
	useCase, err := c.TenantUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant use case for tenant handler: %w", err)
	}

	return tenantHTTP.NewTenantHandler(useCase, c.Logger()), nil
}
