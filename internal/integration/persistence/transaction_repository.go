// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pesawise/backend/internal/application/adapter"
	"github.com/pesawise/backend/internal/domain/entity"
	domainerror "github.com/pesawise/backend/internal/domain/error"
	"github.com/pesawise/backend/internal/integration/persistence/model"
)

// createBatchSize bounds the rows per INSERT statement in CreateBatch.
const createBatchSize = 100

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	transaction.CreatedAt = transactionModel.CreatedAt
	return nil
}

// CreateBatch creates multiple transactions in a single database transaction.
func (r *transactionRepository) CreateBatch(ctx context.Context, transactions []*entity.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	models := make([]*model.TransactionModel, len(transactions))
	for i, t := range transactions {
		models[i] = model.TransactionFromEntity(t)
	}

	// Use transaction to ensure atomicity
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, createBatchSize).Error
	})
	if err != nil {
		return err
	}

	for i, m := range models {
		transactions[i].CreatedAt = m.CreatedAt
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByUser retrieves all transactions for a given user.
func (r *transactionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return r.FindByFilter(ctx, adapter.TransactionFilter{UserID: userID})
}

// FindByFilter retrieves transactions based on filter criteria, newest first.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})

	// Apply filters
	query = query.Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", entity.CalendarDate(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("date < ?", entity.CalendarDate(*filter.EndDate))
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", string(*filter.Kind))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var transactionModels []model.TransactionModel
	result := query.Order("date DESC, created_at DESC").Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// Delete soft-deletes a transaction by its ID.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// ExistingExternalRefs returns the subset of refs already stored for the user.
// Soft-deleted rows count, so a deleted synced record is not imported again.
func (r *transactionRepository) ExistingExternalRefs(ctx context.Context, userID uuid.UUID, refs []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(refs))
	if len(refs) == 0 {
		return existing, nil
	}

	var found []string
	result := r.db.WithContext(ctx).
		Unscoped().
		Model(&model.TransactionModel{}).
		Where("user_id = ? AND external_ref IN ?", userID, refs).
		Pluck("external_ref", &found)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, ref := range found {
		existing[ref] = true
	}
	return existing, nil
}
