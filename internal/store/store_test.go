package store_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gmdcok-crypto/meal-manage/internal/db"
	"github.com/gmdcok-crypto/meal-manage/internal/db/migrations"
	"github.com/gmdcok-crypto/meal-manage/internal/dbpool"
	"github.com/gmdcok-crypto/meal-manage/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// testFixture is the registry seed every store test works against: one
// company, one department, and two active employees.
type testFixture struct {
	base        store.Base
	companyID   int64
	deptID      int64
	subjectID   int64
	operatorID  int64
	subjectName string
}

// setupFixture seeds a fresh company subtree, torn down after the test.
// Deleting the company cascades through departments, employees, policies,
// and events; audit rows survive with operator_id nulled.
func setupFixture(t *testing.T) *testFixture {
	t.Helper()

	env := getTestEnv(t)
	ctx := context.Background()

	f := &testFixture{
		base:        store.Base{Pool: env.pool, Log: env.log},
		subjectName: "Kim Test",
	}

	code := fmt.Sprintf("test-%d", time.Now().UnixNano())
	err := env.pool.QueryRow(ctx,
		"INSERT INTO companies (code, name) VALUES ($1, 'Test Co') RETURNING id",
		code).Scan(&f.companyID)
	if err != nil {
		t.Fatalf("seeding company: %v", err)
	}
	t.Cleanup(func() {
		//nolint:errcheck // best-effort teardown.
		env.pool.Exec(context.Background(), "DELETE FROM companies WHERE id = $1", f.companyID)
	})

	err = env.pool.QueryRow(ctx,
		"INSERT INTO departments (company_id, code, name) VALUES ($1, 'eng', 'Engineering') RETURNING id",
		f.companyID).Scan(&f.deptID)
	if err != nil {
		t.Fatalf("seeding department: %v", err)
	}

	err = env.pool.QueryRow(ctx, `
		INSERT INTO employees (company_id, department_id, emp_no, name)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		f.companyID, f.deptID, code+"-1", f.subjectName).Scan(&f.subjectID)
	if err != nil {
		t.Fatalf("seeding subject: %v", err)
	}

	err = env.pool.QueryRow(ctx, `
		INSERT INTO employees (company_id, department_id, emp_no, name)
		VALUES ($1, $2, $3, 'Park Operator') RETURNING id`,
		f.companyID, f.deptID, code+"-2").Scan(&f.operatorID)
	if err != nil {
		t.Fatalf("seeding operator: %v", err)
	}

	return f
}
