package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const txColumns = `id, date, type, description, amount,
	debit_account, debit_amount, credit_account, credit_amount,
	payment_method, product_name, product_type, quantity, unit_cost,
	partner_name, creditor_name, debtor_name, customer_name,
	order_number, note, created_at`

// TransactionRepo implementación del puerto TransactionRepository sobre
// PostgreSQL. El diario en memoria es la fuente de verdad; esta tabla es la
// copia de respaldo que el motor sincroniza con BulkPut tras cada mutación.
type TransactionRepo struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository construye el adaptador de persistencia del diario.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// GetAll devuelve el diario completo en orden de registro (se lee una vez al
// arranque para hidratar el store).
func (r *TransactionRepo) GetAll() ([]*entity.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions ORDER BY created_at, id`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}

// Add persiste un asiento nuevo.
func (r *TransactionRepo) Add(tx *entity.Transaction) error {
	if err := insertTransaction(context.Background(), r.pool, tx); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

// Update reescribe un asiento existente.
func (r *TransactionRepo) Update(tx *entity.Transaction) error {
	query := `
		UPDATE transactions SET date = $2, type = $3, description = $4, amount = $5,
			debit_account = $6, debit_amount = $7, credit_account = $8, credit_amount = $9,
			payment_method = $10, product_name = $11, product_type = $12, quantity = $13, unit_cost = $14,
			partner_name = $15, creditor_name = $16, debtor_name = $17, customer_name = $18,
			order_number = $19, note = $20
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		tx.ID, tx.Date, tx.Type, tx.Description, tx.Amount,
		tx.Debit.Account, tx.Debit.Amount, tx.Credit.Account, tx.Credit.Amount,
		tx.PaymentMethod, tx.ProductName, tx.ProductType, tx.Quantity, tx.UnitCost,
		tx.PartnerName, tx.CreditorName, tx.DebtorName, tx.CustomerName,
		tx.OrderNumber, tx.Note,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

// Delete elimina un asiento por ID.
func (r *TransactionRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// BulkPut reemplaza la tabla completa por el diario en memoria, en una sola
// transacción.
func (r *TransactionRepo) BulkPut(txs []*entity.Transaction) error {
	ctx := context.Background()
	return runInTx(ctx, r.pool, func(dbtx pgx.Tx) error {
		if _, err := dbtx.Exec(ctx, `DELETE FROM transactions`); err != nil {
			return fmt.Errorf("clear transactions: %w", err)
		}
		for _, tx := range txs {
			if err := insertTransaction(ctx, dbtx, tx); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear vacía la tabla (reinicio de período).
func (r *TransactionRepo) Clear() error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM transactions`)
	if err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	return nil
}

func insertTransaction(ctx context.Context, q Querier, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + txColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := q.Exec(ctx, query,
		tx.ID, tx.Date, tx.Type, tx.Description, tx.Amount,
		tx.Debit.Account, tx.Debit.Amount, tx.Credit.Account, tx.Credit.Amount,
		tx.PaymentMethod, tx.ProductName, tx.ProductType, tx.Quantity, tx.UnitCost,
		tx.PartnerName, tx.CreditorName, tx.DebtorName, tx.CustomerName,
		tx.OrderNumber, tx.Note, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(
		&t.ID, &t.Date, &t.Type, &t.Description, &t.Amount,
		&t.Debit.Account, &t.Debit.Amount, &t.Credit.Account, &t.Credit.Amount,
		&t.PaymentMethod, &t.ProductName, &t.ProductType, &t.Quantity, &t.UnitCost,
		&t.PartnerName, &t.CreditorName, &t.DebtorName, &t.CustomerName,
		&t.OrderNumber, &t.Note, &t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return &t, nil
}
