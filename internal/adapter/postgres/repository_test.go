package postgres

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake DB ---
//
// The DB interfaces exist so repositories can run against this fake instead
// of a live pool. Each canned result is consumed in call order.

type fakeRow struct {
	vals []any
	err  error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if i >= len(r.vals) || r.vals[i] == nil {
			continue
		}
		dv := reflect.ValueOf(d).Elem()
		sv := reflect.ValueOf(r.vals[i])
		dv.Set(sv.Convert(dv.Type()))
	}
	return nil
}

type fakeRows struct {
	rows []*fakeRow
	pos  int
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error { return r.rows[r.pos-1].Scan(dest...) }
func (r *fakeRows) Close()                 {}

type fakeTag int64

func (t fakeTag) RowsAffected() int64 { return int64(t) }

type execCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	rowQueue  []*fakeRow
	rowsQueue []*fakeRows
	execTag   fakeTag
	execCalls []execCall
	queries   []execCall
	committed bool
	rolledBck bool
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	db.queries = append(db.queries, execCall{sql: sql, args: args})
	rows := db.rowsQueue[0]
	db.rowsQueue = db.rowsQueue[1:]
	return rows, nil
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	db.queries = append(db.queries, execCall{sql: sql, args: args})
	row := db.rowQueue[0]
	db.rowQueue = db.rowQueue[1:]
	return row
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	db.execCalls = append(db.execCalls, execCall{sql: sql, args: args})
	return db.execTag, nil
}

func (db *fakeDB) Begin(ctx context.Context) (Tx, error) { return &fakeTx{db: db}, nil }
func (db *fakeDB) Close()                                {}

type fakeTx struct {
	db *fakeDB
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return t.db.Query(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return t.db.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return t.db.Exec(ctx, sql, args...)
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.db.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.db.rolledBck = true
	return nil
}

// --- Tests ---

func orderRowVals(id int, layers string) []any {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	return []any{
		id, 3, "custom", "wedding", "rose-gold", 120, []byte(layers),
		"baking", "high", int64(45000), int64(22500), int64(22500), int64(22500),
		"partial", true, "aabbccddeeff00112233445566778899", nil,
		nil, nil, created, created, nil,
	}
}

func TestOrderFindByID(t *testing.T) {
	db := &fakeDB{rowQueue: []*fakeRow{{vals: orderRowVals(9, `[{"flavor":"almond","fillings":["raspberry"],"notes":""}]`)}}}
	repo := NewOrderRepository(db)

	order, err := repo.FindByID(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, 9, order.ID)
	assert.Equal(t, domain.StatusBaking, order.Status)
	assert.Equal(t, domain.PriorityHigh, order.Priority)
	assert.Equal(t, domain.PaymentPartial, order.PaymentStatus)
	require.Len(t, order.Layers, 1)
	assert.Equal(t, "almond", order.Layers[0].Flavor)
	assert.Equal(t, []string{"raspberry"}, order.Layers[0].Fillings)
}

func TestOrderFindByIDNotFound(t *testing.T) {
	db := &fakeDB{rowQueue: []*fakeRow{{err: pgx.ErrNoRows}}}
	repo := NewOrderRepository(db)

	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderCreateLogsInitialStatus(t *testing.T) {
	db := &fakeDB{rowQueue: []*fakeRow{{vals: []any{17}}}, execTag: 1}
	repo := NewOrderRepository(db)

	order, err := domain.NewOrder(3, "custom", "birthday", "", 24, nil, 12500, 6250, "", nil)
	require.NoError(t, err)

	require.NoError(t, repo.Create(context.Background(), order))

	assert.Equal(t, 17, order.ID)
	assert.True(t, db.committed)
	require.Len(t, db.execCalls, 1)
	assert.Contains(t, db.execCalls[0].sql, "order_status_log")
	assert.Equal(t, 17, db.execCalls[0].args[0])
	assert.Equal(t, domain.StatusPending, db.execCalls[0].args[1])
}

func TestOrderListFilterBuildsConditions(t *testing.T) {
	db := &fakeDB{rowsQueue: []*fakeRows{{}}}
	repo := NewOrderRepository(db)

	_, err := repo.List(context.Background(), interfaces.OrderFilter{
		Status:   domain.StatusReady,
		Priority: domain.PriorityRush,
	})
	require.NoError(t, err)

	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0].sql, "status = $1")
	assert.Contains(t, db.queries[0].sql, "priority = $2")
	assert.Equal(t, []any{domain.StatusReady, domain.PriorityRush}, db.queries[0].args)
}

func TestOrderUpdateMissingRow(t *testing.T) {
	db := &fakeDB{execTag: 0}
	repo := NewOrderRepository(db)

	order, err := domain.NewOrder(3, "custom", "", "", 10, nil, 5000, 0, "", nil)
	require.NoError(t, err)
	order.ID = 999

	assert.ErrorIs(t, repo.Update(context.Background(), order), domain.ErrOrderNotFound)
}

func TestOrderRecordPaymentTx(t *testing.T) {
	db := &fakeDB{execTag: 1}
	repo := NewOrderRepository(db)

	order, err := domain.NewOrder(3, "custom", "", "", 10, nil, 10000, 5000, "", nil)
	require.NoError(t, err)
	order.ID = 7
	order.ApplyPayment(5000)

	require.NoError(t, repo.RecordPayment(context.Background(), order, 5000, "cash"))

	assert.True(t, db.committed)
	require.Len(t, db.execCalls, 2)
	assert.Contains(t, db.execCalls[0].sql, "INSERT INTO payments")
	assert.Contains(t, db.execCalls[1].sql, "UPDATE orders")
	assert.Equal(t, int64(5000), db.execCalls[1].args[0], "amount_paid written from the derived state")
}

func TestCustomerNotFound(t *testing.T) {
	db := &fakeDB{rowQueue: []*fakeRow{{err: pgx.ErrNoRows}}}
	repo := NewCustomerRepository(db)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestStaffNotFound(t *testing.T) {
	db := &fakeDB{rowQueue: []*fakeRow{{err: pgx.ErrNoRows}}}
	repo := NewStaffRepository(db)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrStaffNotFound)
}
