package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var driverCounter uint64

type txState struct {
	commits   int64
	rollbacks int64
	// commits fail with failCode until failCommits is exhausted
	commitCalls int64
	failCommits int64
	failCode    string
}

type trackingDriver struct {
	state *txState
}

func (d *trackingDriver) Open(name string) (driver.Conn, error) {
	return &trackingConn{state: d.state}, nil
}

type trackingConn struct {
	state *txState
}

func (c *trackingConn) Prepare(query string) (driver.Stmt, error) {
	return &trackingStmt{}, nil
}

func (c *trackingConn) Close() error {
	return nil
}

func (c *trackingConn) Begin() (driver.Tx, error) {
	return &trackingTx{state: c.state}, nil
}

func (c *trackingConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return &trackingTx{state: c.state}, nil
}

type trackingTx struct {
	state *txState
}

func (t *trackingTx) Commit() error {
	call := atomic.AddInt64(&t.state.commitCalls, 1)
	if call <= t.state.failCommits {
		code := t.state.failCode
		if code == "" {
			code = "40001"
		}
		return &pq.Error{Code: pq.ErrorCode(code)}
	}
	atomic.AddInt64(&t.state.commits, 1)
	return nil
}

func (t *trackingTx) Rollback() error {
	atomic.AddInt64(&t.state.rollbacks, 1)
	return nil
}

type trackingStmt struct{}

func (s *trackingStmt) Close() error {
	return nil
}

func (s *trackingStmt) NumInput() int {
	return -1
}

func (s *trackingStmt) Exec(args []driver.Value) (driver.Result, error) {
	return nil, nil
}

func (s *trackingStmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, nil
}

func openTrackingDB(t *testing.T, state *txState) *sqlx.DB {
	t.Helper()
	name := fmt.Sprintf("tracking-%d", atomic.AddUint64(&driverCounter, 1))
	sql.Register(name, &trackingDriver{state: state})
	sqlDB, err := sql.Open(name, "")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlx.NewDb(sqlDB, name)
}

func TestWithTxCommits(t *testing.T) {
	state := &txState{}
	xdb := openTrackingDB(t, state)
	if err := WithTx(context.Background(), xdb, func(*sqlx.Tx) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.commits != 1 || state.rollbacks != 0 {
		t.Fatalf("expected commit=1 rollback=0, got %d/%d", state.commits, state.rollbacks)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	state := &txState{}
	xdb := openTrackingDB(t, state)
	if err := WithTx(context.Background(), xdb, func(*sqlx.Tx) error { return errors.New("boom") }); err == nil {
		t.Fatalf("expected error")
	}
	if state.rollbacks != 1 || state.commits != 0 {
		t.Fatalf("expected rollback=1 commit=0, got %d/%d", state.rollbacks, state.commits)
	}
}

func TestWithTxRetriesOnConflict(t *testing.T) {
	state := &txState{failCommits: 1}
	xdb := openTrackingDB(t, state)
	if err := WithTx(context.Background(), xdb, func(*sqlx.Tx) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.commitCalls != 2 {
		t.Fatalf("expected 2 commit attempts, got %d", state.commitCalls)
	}
}

func TestWithTxRetryCapExceeded(t *testing.T) {
	state := &txState{failCommits: 10, failCode: "40P01"}
	xdb := openTrackingDB(t, state)
	err := WithTx(context.Background(), xdb, func(*sqlx.Tx) error { return nil })
	if err == nil {
		t.Fatalf("expected retry limit error")
	}
	if state.commitCalls != 5 {
		t.Fatalf("expected 5 commit attempts, got %d", state.commitCalls)
	}
}
