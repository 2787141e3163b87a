package app

import (
	"context"
	"fmt"

	categoryDomain "github.com/allisson/familyvault/internal/category/domain"
	categoryHTTP "github.com/allisson/familyvault/internal/category/http"
	categoryRepository "github.com/allisson/familyvault/internal/category/repository"
	categoryUseCase "github.com/allisson/familyvault/internal/category/usecase"
)

// CategorySeeder inserts the system category set, skipping names that already
// exist. Both concrete category repositories implement it.
type CategorySeeder interface {
	SeedSystemCategories(ctx context.Context, categories []*categoryDomain.Category) (int, error)
}

// CategorySeeder returns the seeding view of the category repository.
func (c *Container) CategorySeeder() (CategorySeeder, error) {
	repo, err := c.CategoryRepository()
	if err != nil {
		return nil, err
	}

	seeder, ok := repo.(CategorySeeder)
	if !ok {
		return nil, fmt.Errorf("category repository does not support seeding")
	}
	return seeder, nil
}

// CategoryRepository returns the category repository based on the database driver.
func (c *Container) CategoryRepository() (categoryUseCase.CategoryRepository, error) {
	c.categoryRepoInit.Do(func() {
		repo, err := c.initCategoryRepository()
		if err != nil {
			c.initErrors["categoryRepo"] = err
			return
		}
		c.categoryRepo = repo
	})
	if storedErr, exists := c.initErrors["categoryRepo"]; exists {
		return nil, storedErr
	}
	return c.categoryRepo, nil
}

// CategoryUseCase returns the category use case.
func (c *Container) CategoryUseCase() (categoryUseCase.UseCase, error) {
	c.categoryUCInit.Do(func() {
		repo, err := c.CategoryRepository()
		if err != nil {
			c.initErrors["categoryUseCase"] = fmt.Errorf("failed to get category repository for category use case: %w", err)
			return
		}
		c.categoryUC = categoryUseCase.NewCategoryUseCase(repo)
	})
	if storedErr, exists := c.initErrors["categoryUseCase"]; exists {
		return nil, storedErr
	}
	return c.categoryUC, nil
}

// CategoryHandler returns the HTTP handler for category operations.
func (c *Container) CategoryHandler() (*categoryHTTP.CategoryHandler, error) {
	c.categoryHandlerInit.Do(func() {
		useCase, err := c.CategoryUseCase()
		if err != nil {
			c.initErrors["categoryHandler"] = fmt.Errorf("failed to get category use case for category handler: %w", err)
			return
		}
		c.categoryHandler = categoryHTTP.NewCategoryHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["categoryHandler"]; exists {
		return nil, storedErr
	}
	return c.categoryHandler, nil
}

// initCategoryRepository creates the category repository based on the database driver.
func (c *Container) initCategoryRepository() (categoryUseCase.CategoryRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for category repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return categoryRepository.NewPostgreSQLCategoryRepository(db), nil
	case "mysql":
		return categoryRepository.NewMySQLCategoryRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}
