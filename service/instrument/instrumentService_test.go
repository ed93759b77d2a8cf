package instrumentsvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	instrumentsvc "instrumentrental/service/instrument"
)

type repoMock struct {
	listFn func(ctx context.Context, tx *sqlx.Tx, instrumentType string) ([]instrumentsvc.Instrument, error)
}

func (m *repoMock) ListAvailable(ctx context.Context, tx *sqlx.Tx, instrumentType string) ([]instrumentsvc.Instrument, error) {
	return m.listFn(ctx, tx, instrumentType)
}

func newDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestListAvailable_CommitsReadOnlyTx(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var gotType string
	m := &repoMock{
		listFn: func(ctx context.Context, tx *sqlx.Tx, instrumentType string) ([]instrumentsvc.Instrument, error) {
			gotType = instrumentType
			return []instrumentsvc.Instrument{{ID: 1, Type: "guitar"}}, nil
		},
	}
	s := instrumentsvc.New(db, m)

	out, err := s.ListAvailable(context.Background(), "guitar")
	if err != nil || len(out) != 1 {
		t.Fatalf("got out=%v err=%v; want one instrument", out, err)
	}
	if gotType != "guitar" {
		t.Fatalf("filter %q not passed through", gotType)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("read-only tx not committed: %v", err)
	}
}

func TestListAvailable_FailureRollsBack(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	listErr := errors.New("query exploded")
	m := &repoMock{
		listFn: func(ctx context.Context, tx *sqlx.Tx, instrumentType string) ([]instrumentsvc.Instrument, error) {
			return nil, listErr
		},
	}
	s := instrumentsvc.New(db, m)

	if _, err := s.ListAvailable(context.Background(), ""); !errors.Is(err, listErr) {
		t.Fatalf("got %v; want the query failure", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("tx not rolled back: %v", err)
	}
}
