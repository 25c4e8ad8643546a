package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"paper-mart/internal/database"
	"paper-mart/internal/model"
	"paper-mart/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container with the catalogue schema
// applied and returns a connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// Catalog holds the ids of the fixture category tree.
type Catalog struct {
	PlannersID int64
	AgendasID  int64
	MugsID     int64
}

// SeedCatalog populates a small category tree with products: 15 planners
// (two of them under the Weekly Agendas subcategory) and 3 mugs.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) Catalog {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()
	categories := repository.NewCategoryRepository(pool, logger)
	products := repository.NewProductRepository(pool, logger)

	plannersID, err := categories.Create(ctx, &model.Category{Name: "Planners"})
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	agendasID, err := categories.Create(ctx, &model.Category{Name: "Weekly Agendas", ParentID: &plannersID})
	if err != nil {
		t.Fatalf("failed to seed subcategory: %v", err)
	}
	mugsID, err := categories.Create(ctx, &model.Category{Name: "Mugs"})
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	for i := 1; i <= 15; i++ {
		p := &model.Product{
			Name:          fmt.Sprintf("Planner %02d", i),
			Description:   "test planner",
			Price:         decimal.NewFromInt(int64(10 + i)),
			StockQuantity: 5,
			CategoryID:    plannersID,
		}
		if i <= 2 {
			p.SubCategoryID = &agendasID
		}
		if _, err := products.Create(ctx, p); err != nil {
			t.Fatalf("failed to seed product: %v", err)
		}
	}

	for i := 1; i <= 3; i++ {
		_, err := products.Create(ctx, &model.Product{
			Name:          fmt.Sprintf("Mug %02d", i),
			Description:   "test mug",
			Price:         decimal.NewFromInt(int64(i)),
			StockQuantity: 5,
			CategoryID:    mugsID,
		})
		if err != nil {
			t.Fatalf("failed to seed product: %v", err)
		}
	}

	return Catalog{PlannersID: plannersID, AgendasID: agendasID, MugsID: mugsID}
}

// CleanupDB removes all data from the catalogue tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"products", "categories"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
