package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var (
	errStubQuery   = errors.New("Query not implemented in stubBatchResults")
	errStubRowScan = errors.New("Scan not implemented in stubBatchRow")
	errExecFailed  = errors.New("exec failed")
	errCloseFailed = errors.New("close failed")
)

type stubBatchResults struct {
	execCalls int
	execErrAt int
	execErr   error

	closeCalls int
	closeErr   error
}

func (s *stubBatchResults) Exec() (pgconn.CommandTag, error) {
	defer func() { s.execCalls++ }()

	if s.execErr != nil && s.execCalls == s.execErrAt {
		return pgconn.CommandTag{}, s.execErr
	}

	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (s *stubBatchResults) Query() (pgx.Rows, error) {
	return nil, errStubQuery
}

type stubBatchRow struct{}

func (stubBatchRow) Scan(...any) error { return errStubRowScan }

func (s *stubBatchResults) QueryRow() pgx.Row {
	return stubBatchRow{}
}

func (s *stubBatchResults) Close() error {
	s.closeCalls++
	return s.closeErr
}

func TestExecBatchSkipsEmptyBatch(t *testing.T) {
	err := execBatch(context.Background(), &pgx.Batch{}, func(context.Context, *pgx.Batch) pgx.BatchResults {
		t.Fatalf("SendBatch should not be called for an empty batch")
		return nil
	}, "facts")
	require.NoError(t, err)
}

func TestExecBatchReportsFailingCommandAndCloses(t *testing.T) {
	batch := &pgx.Batch{}
	batch.Queue("SELECT 1")
	batch.Queue("SELECT 2")

	br := &stubBatchResults{execErrAt: 1, execErr: errExecFailed}

	err := execBatch(context.Background(), batch, func(context.Context, *pgx.Batch) pgx.BatchResults {
		return br
	}, "facts")
	require.Error(t, err)
	require.Contains(t, err.Error(), "facts batch exec (command 1)")
	require.Equal(t, 1, br.closeCalls)
}

func TestExecBatchSurfacesCloseError(t *testing.T) {
	batch := &pgx.Batch{}
	batch.Queue("SELECT 1")

	br := &stubBatchResults{closeErr: errCloseFailed}

	err := execBatch(context.Background(), batch, func(context.Context, *pgx.Batch) pgx.BatchResults {
		return br
	}, "facts")
	require.Error(t, err)
	require.Contains(t, err.Error(), "facts batch close: close failed")
	require.Equal(t, 1, br.closeCalls)
}
