package app

import (
	"fmt"

	sharingHTTP "github.com/allisson/familyvault/internal/sharing/http"
	sharingRepository "github.com/allisson/familyvault/internal/sharing/repository"
	sharingUseCase "github.com/allisson/familyvault/internal/sharing/usecase"
)

// PermissionRepository returns the permission repository based on the database driver.
func (c *Container) PermissionRepository() (sharingUseCase.PermissionRepository, error) {
	c.permissionRepoInit.Do(func() {
		repo, err := c.initPermissionRepository()
		if err != nil {
			c.initErrors["permissionRepo"] = err
			return
		}
		c.permissionRepo = repo
	})
	if storedErr, exists := c.initErrors["permissionRepo"]; exists {
		return nil, storedErr
	}
	return c.permissionRepo, nil
}

// PermissionUseCase returns the sharing use case.
func (c *Container) PermissionUseCase() (sharingUseCase.PermissionUseCase, error) {
	c.permissionUCInit.Do(func() {
		useCase, err := c.initPermissionUseCase()
		if err != nil {
			c.initErrors["permissionUseCase"] = err
			return
		}
		c.permissionUC = useCase
	})
	if storedErr, exists := c.initErrors["permissionUseCase"]; exists {
		return nil, storedErr
	}
	return c.permissionUC, nil
}

// PermissionHandler returns the HTTP handler for sharing operations.
func (c *Container) PermissionHandler() (*sharingHTTP.PermissionHandler, error) {
	c.permissionHandlerInit.Do(func() {
		useCase, err := c.PermissionUseCase()
		if err != nil {
			c.initErrors["permissionHandler"] = fmt.Errorf("failed to get permission use case for permission handler: %w", err)
			return
		}
		c.permissionHandler = sharingHTTP.NewPermissionHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["permissionHandler"]; exists {
		return nil, storedErr
	}
	return c.permissionHandler, nil
}

// initPermissionRepository creates the permission repository based on the database driver.
func (c *Container) initPermissionRepository() (sharingUseCase.PermissionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for permission repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return sharingRepository.NewPostgreSQLPermissionRepository(db), nil
	case "mysql":
		return sharingRepository.NewMySQLPermissionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPermissionUseCase creates the sharing use case with all its dependencies.
func (c *Container) initPermissionUseCase() (sharingUseCase.PermissionUseCase, error) {
	permissionRepo, err := c.PermissionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission repository for permission use case: %w", err)
	}

	itemRepo, err := c.ItemRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get item repository for permission use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for permission use case: %w", err)
	}

	return sharingUseCase.NewPermissionUseCase(permissionRepo, itemRepo, userRepo), nil
}
