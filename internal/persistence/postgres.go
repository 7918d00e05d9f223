package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NamespaceRecord is one persisted namespace blob
type NamespaceRecord struct {
	Namespace string         `gorm:"primaryKey;type:varchar(255)"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NamespaceRecord) TableName() string {
	return "storefront_namespaces"
}

// PostgresStorage keeps one row per namespace
type PostgresStorage struct {
	db *gorm.DB
}

// NewPostgresStorage creates a gorm-backed storage
func NewPostgresStorage(db *gorm.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// Migrate creates or updates the namespaces table
func (p *PostgresStorage) Migrate() error {
	return p.db.AutoMigrate(&NamespaceRecord{})
}

func (p *PostgresStorage) Get(ctx context.Context, namespace string) (Blob, error) {
	var rec NamespaceRecord
	err := p.db.WithContext(ctx).Where("namespace = ?", namespace).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNamespaceNotFound
	}
	if err != nil {
		return nil, err
	}
	var blob Blob
	if err := json.Unmarshal(rec.Data, &blob); err != nil {
		return nil, err
	}
	if blob == nil {
		blob = Blob{}
	}
	return blob, nil
}

// Put upserts the namespace row
func (p *PostgresStorage) Put(ctx context.Context, namespace string, blob Blob) error {
	data, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	rec := NamespaceRecord{Namespace: namespace, Data: datatypes.JSON(data)}
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
}
