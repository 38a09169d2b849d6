package repositories

import (
	"github.com/pawsconnect/backend/internal/models"
	"gorm.io/gorm"
)

// AccountRepository defines the interface for the account registry.
type AccountRepository interface {
	Create(account *models.Account) error
	GetByFirebaseUID(uid string) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	UpdateDisplayName(uid, name string) error
	Delete(uid string) error
}

// PostgresAccountRepository implements AccountRepository for PostgreSQL
type PostgresAccountRepository struct {
	db *gorm.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository
func NewPostgresAccountRepository(db *gorm.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// Create inserts a new account row.
func (r *PostgresAccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// GetByFirebaseUID retrieves the account linked to a Firebase UID.
func (r *PostgresAccountRepository) GetByFirebaseUID(uid string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("firebase_uid = ?", uid).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByEmail retrieves the account registered under an email address.
func (r *PostgresAccountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateDisplayName refreshes the cached display name for an actor.
func (r *PostgresAccountRepository) UpdateDisplayName(uid, name string) error {
	return r.db.Model(&models.Account{}).Where("firebase_uid = ?", uid).Update("display_name", name).Error
}

// Delete removes the account row for an actor.
func (r *PostgresAccountRepository) Delete(uid string) error {
	res := r.db.Where("firebase_uid = ?", uid).Delete(&models.Account{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
