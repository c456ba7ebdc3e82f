package dbstore

import (
	"context"
	"fmt"

	"locize-sync/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store keeps translations in SQL tables, one row per key.
type Store struct {
	db        *gorm.DB
	namespace string
	logger    *zap.Logger
}

// NewStore creates a database-backed translation store.
func NewStore(db *gorm.DB, namespace string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, namespace: namespace, logger: logger}
}

// Migrate creates or updates the languages and translations tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&LanguageRow{}, &TranslationRow{}); err != nil {
		return fmt.Errorf("failed to migrate translation tables: %w", err)
	}
	return nil
}

// Name returns the backend name.
func (s *Store) Name() string {
	return "database"
}

// Languages returns the languages ordered by position, then code.
func (s *Store) Languages(ctx context.Context) (reconcile.Languages, error) {
	var rows []LanguageRow
	if err := s.db.WithContext(ctx).Order("position, code").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query languages: %w", err)
	}

	langs := make(reconcile.Languages, 0, len(rows))
	for _, row := range rows {
		langs = append(langs, reconcile.WithDisplayNames(reconcile.Language{
			Code:       row.Code,
			Name:       row.Name,
			NativeName: row.NativeName,
			Reference:  row.Reference,
		}))
	}
	return langs, nil
}

// Resources returns the namespace rows of one language keyed by their
// dot-joined key.
func (s *Store) Resources(ctx context.Context, code string) (map[string]any, error) {
	var rows []TranslationRow
	err := s.db.WithContext(ctx).
		Where("language = ? AND namespace = ?", code, s.namespace).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query translations for %s: %w", code, err)
	}

	doc := make(map[string]any, len(rows))
	for _, row := range rows {
		doc[row.Key] = row.Value
	}
	return doc, nil
}

// AddMissing upserts entries in a single transaction. Rows that exist with an
// empty value are overwritten.
func (s *Store) AddMissing(ctx context.Context, code string, entries reconcile.ActionSet) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([]TranslationRow, 0, len(entries))
	for key, value := range entries {
		rows = append(rows, TranslationRow{
			Language:  code,
			Namespace: s.namespace,
			Key:       string(key),
			Value:     value,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "language"}, {Name: "namespace"}, {Name: "translation_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).CreateInBatches(&rows, 100).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save translations for %s: %w", code, err)
	}

	s.logger.Debug("Saved translations", zap.String("language", code), zap.Int("count", len(rows)))
	return nil
}
