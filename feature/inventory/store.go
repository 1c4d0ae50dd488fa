package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storage-bridge/core/database"
	"storage-bridge/core/utils"
	"storage-bridge/feature/inventory/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a fingerprint has no stored item.
var ErrNotFound = errors.New("item not found")

// ErrSchemaMismatch is returned when a table lacks required columns after migration.
var ErrSchemaMismatch = errors.New("schema mismatch")

// requiredColumns lists the columns the queries below depend on.
var requiredColumns = map[string][]string{
	"stored_items": {"fingerprint", "item_id", "mod_id", "amount", "is_craftable", "last_modified"},
	"item_limits":  {"fingerprint", "min", "max", "date_created"},
	"item_assets":  {"item_id", "display_name", "mod_id"},
	"mod_assets":   {"mod_id", "display_name"},
}

// SortField selects the ordering of ListItems.
type SortField string

const (
	SortAmount       SortField = "amount"
	SortLastModified SortField = "lastModified"
)

// ListQuery filters and orders ListItems.
type ListQuery struct {
	// ItemIDs restricts the result when non-nil. An empty non-nil slice matches nothing.
	ItemIDs []string
	Sort    SortField
	Asc     bool
}

// Store is the persisted inventory. All methods are safe for concurrent use.
type Store struct {
	db *gorm.DB
}

// NewStore wraps a database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the inventory tables and verifies their columns.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models.Tables()...); err != nil {
		return fmt.Errorf("failed to migrate inventory tables: %w", err)
	}
	return s.CheckSchema(ctx)
}

// CheckSchema verifies that every inventory table has the columns the store queries.
func (s *Store) CheckSchema(ctx context.Context) error {
	var problems []string
	for _, table := range []string{"stored_items", "item_limits", "item_assets", "mod_assets"} {
		missing, err := database.MissingColumns(s.db.WithContext(ctx), table, requiredColumns[table])
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("%s missing %s", table, strings.Join(missing, ",")))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(problems, "; "))
	}
	return nil
}

// Transaction runs fn against a Store bound to a single transaction.
// Any error returned by fn rolls the transaction back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) itemViews(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("stored_items AS s").
		Select(`s.fingerprint, s.item_id, s.mod_id,
			COALESCE(a.display_name, s.item_id) AS display_name,
			COALESCE(m.display_name, s.mod_id) AS mod_name,
			s.amount, s.is_craftable, s.last_modified, l.min, l.max`).
		Joins("LEFT JOIN item_assets a ON a.item_id = s.item_id").
		Joins("LEFT JOIN mod_assets m ON m.mod_id = s.mod_id").
		Joins("LEFT JOIN item_limits l ON l.fingerprint = s.fingerprint")
}

// ListItems returns stored items with their limits and display names.
func (s *Store) ListItems(ctx context.Context, q ListQuery) ([]models.ItemView, error) {
	if q.ItemIDs != nil && len(q.ItemIDs) == 0 {
		return []models.ItemView{}, nil
	}

	query := s.itemViews(ctx)
	if q.ItemIDs != nil {
		query = query.Where("s.item_id IN ?", q.ItemIDs)
	}

	column := "s.amount"
	if q.Sort == SortLastModified {
		column = "s.last_modified"
	}
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: column, Raw: true}, Desc: !q.Asc}).
		Order("s.fingerprint")

	views := []models.ItemView{}
	if err := query.Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return views, nil
}

// GetItem returns one stored item with its limit and display names.
func (s *Store) GetItem(ctx context.Context, fingerprint string) (*models.ItemView, error) {
	var views []models.ItemView
	if err := s.itemViews(ctx).Where("s.fingerprint = ?", fingerprint).Limit(1).Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", fingerprint, err)
	}
	if len(views) == 0 {
		return nil, ErrNotFound
	}
	return &views[0], nil
}

// Stats returns the number of distinct stored items and the summed amount.
func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	var (
		count int64
		total any
	)
	row := s.db.WithContext(ctx).Model(&models.StoredItem{}).
		Select("COUNT(*), COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&count, &total); err != nil {
		return models.Stats{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	return models.Stats{UniqueItems: count, TotalAmount: utils.ToInt64(total)}, nil
}

// Items loads the stored items with the given fingerprints.
func (s *Store) Items(ctx context.Context, fingerprints []string) ([]models.StoredItem, error) {
	items := []models.StoredItem{}
	if len(fingerprints) == 0 {
		return items, nil
	}
	if err := s.db.WithContext(ctx).Where("fingerprint IN ?", fingerprints).Order("fingerprint").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	return items, nil
}

// GetLimit returns the rule for a fingerprint, or nil when none exists.
func (s *Store) GetLimit(ctx context.Context, fingerprint string) (*models.ItemLimit, error) {
	var limits []models.ItemLimit
	if err := s.db.WithContext(ctx).Where("fingerprint = ?", fingerprint).Limit(1).Find(&limits).Error; err != nil {
		return nil, fmt.Errorf("failed to load limit %s: %w", fingerprint, err)
	}
	if len(limits) == 0 {
		return nil, nil
	}
	return &limits[0], nil
}

// LimitsFor loads the rules for the given fingerprints, keyed by fingerprint.
func (s *Store) LimitsFor(ctx context.Context, fingerprints []string) (map[string]models.ItemLimit, error) {
	out := make(map[string]models.ItemLimit)
	if len(fingerprints) == 0 {
		return out, nil
	}
	var limits []models.ItemLimit
	if err := s.db.WithContext(ctx).Where("fingerprint IN ?", fingerprints).Find(&limits).Error; err != nil {
		return nil, fmt.Errorf("failed to load limits: %w", err)
	}
	for _, l := range limits {
		out[l.Fingerprint] = l
	}
	return out, nil
}

// SaveLimit upserts a rule. The creation date of an existing rule is kept.
func (s *Store) SaveLimit(ctx context.Context, limit *models.ItemLimit) error {
	if limit.DateCreated.IsZero() {
		limit.DateCreated = time.Now().UTC()
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fingerprint"}},
		DoUpdates: clause.AssignmentColumns([]string{"min", "max"}),
	}).Create(limit).Error
	if err != nil {
		return fmt.Errorf("failed to save limit %s: %w", limit.Fingerprint, err)
	}
	return nil
}

// DeleteLimit removes the rule for a fingerprint. Deleting a missing rule is not an error.
func (s *Store) DeleteLimit(ctx context.Context, fingerprint string) error {
	if err := s.db.WithContext(ctx).Where("fingerprint = ?", fingerprint).Delete(&models.ItemLimit{}).Error; err != nil {
		return fmt.Errorf("failed to delete limit %s: %w", fingerprint, err)
	}
	return nil
}

// limitedRow is the flat shape of the items-with-limits join.
type limitedRow struct {
	Fingerprint  string
	ItemID       string
	ModID        string
	Amount       int64
	IsCraftable  bool
	LastModified time.Time
	Min          *int64
	Max          *int64
	DateCreated  time.Time
}

// ItemsWithLimits returns every stored item that has a rule.
// Rules for fingerprints not currently stored are skipped.
func (s *Store) ItemsWithLimits(ctx context.Context) ([]models.LimitedItem, error) {
	var rows []limitedRow
	err := s.db.WithContext(ctx).
		Table("stored_items AS s").
		Select("s.fingerprint, s.item_id, s.mod_id, s.amount, s.is_craftable, s.last_modified, l.min, l.max, l.date_created").
		Joins("JOIN item_limits l ON l.fingerprint = s.fingerprint").
		Order("s.fingerprint").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load limited items: %w", err)
	}

	out := make([]models.LimitedItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.LimitedItem{
			Item: models.StoredItem{
				Fingerprint:  r.Fingerprint,
				ItemID:       r.ItemID,
				ModID:        r.ModID,
				Amount:       r.Amount,
				IsCraftable:  r.IsCraftable,
				LastModified: r.LastModified,
			},
			Limit: models.ItemLimit{
				Fingerprint: r.Fingerprint,
				Min:         r.Min,
				Max:         r.Max,
				DateCreated: r.DateCreated,
			},
		})
	}
	return out, nil
}

// SearchEntries returns one entry per distinct stored item id.
func (s *Store) SearchEntries(ctx context.Context) ([]models.SearchEntry, error) {
	entries := []models.SearchEntry{}
	err := s.db.WithContext(ctx).
		Table("stored_items AS s").
		Select("s.item_id, COALESCE(MAX(a.display_name), s.item_id) AS display_name, s.mod_id").
		Joins("LEFT JOIN item_assets a ON a.item_id = s.item_id").
		Group("s.item_id, s.mod_id").
		Order("s.item_id").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load search entries: %w", err)
	}
	return entries, nil
}

// ReplaceAssets overwrites the display metadata tables in one transaction.
func (s *Store) ReplaceAssets(ctx context.Context, items []models.ItemAsset, mods []models.ModAsset) error {
	return s.Transaction(ctx, func(tx *Store) error {
		if err := tx.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ItemAsset{}).Error; err != nil {
			return fmt.Errorf("failed to clear item assets: %w", err)
		}
		if err := tx.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ModAsset{}).Error; err != nil {
			return fmt.Errorf("failed to clear mod assets: %w", err)
		}
		if len(items) > 0 {
			if err := tx.db.CreateInBatches(items, 500).Error; err != nil {
				return fmt.Errorf("failed to insert item assets: %w", err)
			}
		}
		if len(mods) > 0 {
			if err := tx.db.CreateInBatches(mods, 500).Error; err != nil {
				return fmt.Errorf("failed to insert mod assets: %w", err)
			}
		}
		return nil
	})
}
