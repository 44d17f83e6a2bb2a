package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tournament-registration/internal/domain/contact"
	qb "github.com/riskibarqy/tournament-registration/internal/platform/querybuilder"
)

const contactFormsTable = "contact_forms"

var contactColumns = qb.Columns(contactTableModel{})

type contactTableModel struct {
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Subject   string    `db:"subject"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

func (m contactTableModel) toDomain() contact.Submission {
	return contact.Submission{
		ID:        m.PublicID,
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func newContactTableModel(s contact.Submission) contactTableModel {
	return contactTableModel{
		PublicID:  s.ID,
		UserID:    s.UserID,
		Name:      s.Name,
		Email:     s.Email,
		Subject:   s.Subject,
		Message:   s.Message,
		CreatedAt: s.CreatedAt.UTC(),
	}
}

type ContactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) List(ctx context.Context) ([]contact.Submission, error) {
	query, args, err := listContactsQuery()
	if err != nil {
		return nil, fmt.Errorf("build list contact forms query: %w", err)
	}

	var rows []contactTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list contact forms: %w", err)
	}
	out := make([]contact.Submission, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ContactRepository) Create(ctx context.Context, s contact.Submission) error {
	query, args, err := qb.InsertModel(contactFormsTable, newContactTableModel(s)).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert contact form query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert contact form: %w", err)
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.DeleteFrom(contactFormsTable).Where(qb.Eq("public_id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete contact form query: %w", err)
	}
	return execAffected(ctx, r.db, "delete contact form", query, args)
}

func listContactsQuery() (string, []any, error) {
	return qb.Select(contactColumns...).
		From(contactFormsTable).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
}
