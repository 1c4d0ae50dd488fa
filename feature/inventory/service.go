package inventory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"storage-bridge/core/validation"
	"storage-bridge/feature/inventory/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrNotConnected is returned when a command has no storage connection to go to.
var ErrNotConnected = errors.New("storage system not connected")

// ErrInvalidCraft is returned when a craft request fails validation.
var ErrInvalidCraft = errors.New("invalid craft request")

// Dispatcher delivers operator commands to connected storage systems.
// Both methods return the number of connections the command was queued on.
type Dispatcher interface {
	SetLimit(fingerprint string, min, max *int64) int
	Craft(itemID, modID string, amount int64) int
}

// Finder resolves a free-text query to ranked item ids.
type Finder interface {
	Search(query string, limit int) []string
}

type noopDispatcher struct{}

func (noopDispatcher) SetLimit(string, *int64, *int64) int { return 0 }
func (noopDispatcher) Craft(string, string, int64) int     { return 0 }

// CraftInput is an operator craft request.
type CraftInput struct {
	ItemID string `json:"itemId" validate:"required"`
	ModID  string `json:"modId"`
	Amount int64  `json:"amount" validate:"gt=0"`
}

// Service handles inventory operations for operators.
type Service struct {
	store      *Store
	dispatcher Dispatcher
	finder     Finder
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewService creates a new inventory service. dispatcher and finder may be nil.
func NewService(store *Store, dispatcher Dispatcher, finder Finder, logger *zap.Logger) *Service {
	if dispatcher == nil {
		dispatcher = noopDispatcher{}
	}
	return &Service{
		store:      store,
		dispatcher: dispatcher,
		finder:     finder,
		validate:   newLimitValidator(),
		logger:     logger,
	}
}

// Store returns the underlying store.
func (s *Service) Store() *Store {
	return s.store
}

// ListItems returns stored items, optionally filtered by a search query.
// With a query and no explicit sort, items keep the search ranking.
func (s *Service) ListItems(ctx context.Context, query string, sort SortField, asc bool) ([]models.ItemView, error) {
	q := ListQuery{Sort: sort, Asc: asc}

	var ranked []string
	if query != "" && s.finder != nil {
		ranked = s.finder.Search(query, 0)
		q.ItemIDs = ranked
	}

	views, err := s.store.ListItems(ctx, q)
	if err != nil {
		return nil, err
	}

	if ranked != nil && sort == "" {
		rank := make(map[string]int, len(ranked))
		for i, id := range ranked {
			rank[id] = i
		}
		sortByRank(views, rank)
	}
	return views, nil
}

// GetItem returns one item with its limit.
func (s *Service) GetItem(ctx context.Context, fingerprint string) (*models.ItemView, error) {
	return s.store.GetItem(ctx, fingerprint)
}

// Stats returns inventory totals.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	return s.store.Stats(ctx)
}

// Sweep evaluates every stored item that has a rule.
func (s *Service) Sweep(ctx context.Context) ([]Decision, error) {
	items, err := s.store.ItemsWithLimits(ctx)
	if err != nil {
		return nil, err
	}
	return EvaluateAll(items), nil
}

// Craft forwards an operator craft request to the storage system.
func (s *Service) Craft(ctx context.Context, in CraftInput) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCraft, validation.Summary(err))
	}
	if in.ModID == "" {
		in.ModID = models.DefaultModID
	}

	if s.dispatcher.Craft(in.ItemID, in.ModID, in.Amount) == 0 {
		return ErrNotConnected
	}

	s.logger.Info("Operator craft requested",
		zap.String("item_id", in.ItemID),
		zap.String("mod_id", in.ModID),
		zap.Int64("amount", in.Amount))
	return nil
}

// sortByRank orders views by rank of their item id, stable within an item id.
func sortByRank(views []models.ItemView, rank map[string]int) {
	slices.SortStableFunc(views, func(a, b models.ItemView) int {
		return cmp.Compare(rank[a.ItemID], rank[b.ItemID])
	})
}
