package app

import (
	"fmt"

	"github.com/allisson/familyvault/internal/crypto"
	vaultHTTP "github.com/allisson/familyvault/internal/vault/http"
	vaultRepository "github.com/allisson/familyvault/internal/vault/repository"
	vaultUseCase "github.com/allisson/familyvault/internal/vault/usecase"
)

// FieldCipher returns the cipher used for sensitive field values.
func (c *Container) FieldCipher() (*crypto.FieldCipher, error) {
	c.fieldCipherInit.Do(func() {
		cipher, err := crypto.NewFieldCipher(c.config.FieldEncryptionKey)
		if err != nil {
			c.initErrors["fieldCipher"] = fmt.Errorf("failed to create field cipher: %w", err)
			return
		}
		c.fieldCipher = cipher
	})
	if storedErr, exists := c.initErrors["fieldCipher"]; exists {
		return nil, storedErr
	}
	return c.fieldCipher, nil
}

// ItemRepository returns the item repository based on the database driver.
func (c *Container) ItemRepository() (vaultUseCase.ItemRepository, error) {
	c.itemRepoInit.Do(func() {
		repo, err := c.initItemRepository()
		if err != nil {
			c.initErrors["itemRepo"] = err
			return
		}
		c.itemRepo = repo
	})
	if storedErr, exists := c.initErrors["itemRepo"]; exists {
		return nil, storedErr
	}
	return c.itemRepo, nil
}

// FieldRepository returns the field repository based on the database driver.
func (c *Container) FieldRepository() (vaultUseCase.FieldRepository, error) {
	c.fieldRepoInit.Do(func() {
		repo, err := c.initFieldRepository()
		if err != nil {
			c.initErrors["fieldRepo"] = err
			return
		}
		c.fieldRepo = repo
	})
	if storedErr, exists := c.initErrors["fieldRepo"]; exists {
		return nil, storedErr
	}
	return c.fieldRepo, nil
}

// ItemUseCase returns the item use case.
func (c *Container) ItemUseCase() (vaultUseCase.ItemUseCase, error) {
	c.itemUCInit.Do(func() {
		useCase, err := c.initItemUseCase()
		if err != nil {
			c.initErrors["itemUseCase"] = err
			return
		}
		c.itemUC = useCase
	})
	if storedErr, exists := c.initErrors["itemUseCase"]; exists {
		return nil, storedErr
	}
	return c.itemUC, nil
}

// FieldUseCase returns the field use case.
func (c *Container) FieldUseCase() (vaultUseCase.FieldUseCase, error) {
	c.fieldUCInit.Do(func() {
		useCase, err := c.initFieldUseCase()
		if err != nil {
			c.initErrors["fieldUseCase"] = err
			return
		}
		c.fieldUC = useCase
	})
	if storedErr, exists := c.initErrors["fieldUseCase"]; exists {
		return nil, storedErr
	}
	return c.fieldUC, nil
}

// ItemHandler returns the HTTP handler for item operations.
func (c *Container) ItemHandler() (*vaultHTTP.ItemHandler, error) {
	c.itemHandlerInit.Do(func() {
		useCase, err := c.ItemUseCase()
		if err != nil {
			c.initErrors["itemHandler"] = fmt.Errorf("failed to get item use case for item handler: %w", err)
			return
		}
		c.itemHandler = vaultHTTP.NewItemHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["itemHandler"]; exists {
		return nil, storedErr
	}
	return c.itemHandler, nil
}

// FieldHandler returns the HTTP handler for field operations.
func (c *Container) FieldHandler() (*vaultHTTP.FieldHandler, error) {
	c.fieldHandlerInit.Do(func() {
		useCase, err := c.FieldUseCase()
		if err != nil {
			c.initErrors["fieldHandler"] = fmt.Errorf("failed to get field use case for field handler: %w", err)
			return
		}
		c.fieldHandler = vaultHTTP.NewFieldHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["fieldHandler"]; exists {
		return nil, storedErr
	}
	return c.fieldHandler, nil
}

// initItemRepository creates the item repository based on the database driver.
func (c *Container) initItemRepository() (vaultUseCase.ItemRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for item repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return vaultRepository.NewPostgreSQLItemRepository(db), nil
	case "mysql":
		return vaultRepository.NewMySQLItemRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initFieldRepository creates the field repository based on the database driver.
func (c *Container) initFieldRepository() (vaultUseCase.FieldRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for field repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return vaultRepository.NewPostgreSQLFieldRepository(db), nil
	case "mysql":
		return vaultRepository.NewMySQLFieldRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initItemUseCase creates the item use case with all its dependencies.
func (c *Container) initItemUseCase() (vaultUseCase.ItemUseCase, error) {
	itemRepo, err := c.ItemRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get item repository for item use case: %w", err)
	}

	fieldRepo, err := c.FieldRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get field repository for item use case: %w", err)
	}

	categoryRepo, err := c.CategoryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get category repository for item use case: %w", err)
	}

	permissionRepo, err := c.PermissionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission repository for item use case: %w", err)
	}

	cipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for item use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for item use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for item use case: %w", err)
	}

	baseUseCase := vaultUseCase.NewItemUseCase(
		itemRepo,
		fieldRepo,
		categoryRepo,
		permissionRepo,
		cipher,
		txManager,
		businessMetrics,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		return vaultUseCase.NewItemUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initFieldUseCase creates the field use case with all its dependencies.
func (c *Container) initFieldUseCase() (vaultUseCase.FieldUseCase, error) {
	itemRepo, err := c.ItemRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get item repository for field use case: %w", err)
	}

	fieldRepo, err := c.FieldRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get field repository for field use case: %w", err)
	}

	permissionRepo, err := c.PermissionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get permission repository for field use case: %w", err)
	}

	cipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for field use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for field use case: %w", err)
	}

	return vaultUseCase.NewFieldUseCase(
		itemRepo,
		fieldRepo,
		permissionRepo,
		cipher,
		businessMetrics,
		c.Logger(),
	), nil
}
