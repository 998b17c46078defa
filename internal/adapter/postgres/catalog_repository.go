package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-decision/internal/core/domain"
)

// CatalogRepository implements port.CatalogSource over the campaign
// database.
type CatalogRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewCatalogRepository returns a new repository instance.
func NewCatalogRepository(pool *pgxpool.Pool, logger *slog.Logger) *CatalogRepository {
	return &CatalogRepository{pool: pool, logger: logger}
}

const (
	campaignsQuery = `
        SELECT id, advertiser_id, name, budget_daily, budget_total, bid_type, bid_amount,
               freq_cap_daily, freq_cap_hourly, start_time, end_time, status, is_active,
               created_at, updated_at
        FROM campaigns
        WHERE status = $1 AND is_active
        ORDER BY id`

	creativesQuery = `
        SELECT cr.id, cr.campaign_id, cr.title, COALESCE(cr.description, ''),
               COALESCE(cr.image_url, ''), COALESCE(cr.video_url, ''), cr.landing_url,
               cr.creative_type, cr.width, cr.height, COALESCE(cr.duration, 0),
               cr.slot_ids, cr.status, cr.quality_score
        FROM creatives cr
        JOIN campaigns c ON c.id = cr.campaign_id
        WHERE cr.status = $1 AND c.status = $1 AND c.is_active
        ORDER BY cr.id`

	rulesQuery = `
        SELECT t.id, t.campaign_id, t.rule_type, t.rule_value, t.is_include
        FROM targeting_rules t
        JOIN campaigns c ON c.id = t.campaign_id
        WHERE c.status = $1 AND c.is_active
        ORDER BY t.id`
)

// LoadCatalog reads active campaigns, their active creatives and their
// targeting rules in one read-only repeatable-read transaction, so the
// three result sets describe the same database state.
func (r *CatalogRepository) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	var cat domain.Catalog

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return cat, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if cat.Campaigns, err = r.campaigns(ctx, tx); err != nil {
		return cat, fmt.Errorf("campaigns: %w", err)
	}
	if cat.Creatives, err = r.creatives(ctx, tx); err != nil {
		return cat, fmt.Errorf("creatives: %w", err)
	}
	if cat.Rules, err = r.rules(ctx, tx); err != nil {
		return cat, fmt.Errorf("targeting rules: %w", err)
	}
	return cat, tx.Commit(ctx)
}

func (r *CatalogRepository) campaigns(ctx context.Context, tx pgx.Tx) ([]domain.Campaign, error) {
	rows, err := tx.Query(ctx, campaignsQuery, domain.StatusActive)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := row.Scan(
			&c.ID,
			&c.AdvertiserID,
			&c.Name,
			&c.DailyBudget,
			&c.TotalBudget,
			&c.BidType,
			&c.BidAmount,
			&c.FreqCapDaily,
			&c.FreqCapHourly,
			&c.StartTime,
			&c.EndTime,
			&c.Status,
			&c.IsActive,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		return c, err
	})
}

func (r *CatalogRepository) creatives(ctx context.Context, tx pgx.Tx) ([]domain.Creative, error) {
	rows, err := tx.Query(ctx, creativesQuery, domain.StatusActive)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Creative, error) {
		var cr domain.Creative
		err := row.Scan(
			&cr.ID,
			&cr.CampaignID,
			&cr.Title,
			&cr.Description,
			&cr.ImageURL,
			&cr.VideoURL,
			&cr.LandingURL,
			&cr.Type,
			&cr.Width,
			&cr.Height,
			&cr.Duration,
			&cr.SlotIDs,
			&cr.Status,
			&cr.QualityScore,
		)
		return cr, err
	})
}

// rawRule is a targeting_rules row before its payload is decoded.
type rawRule struct {
	ID         int64
	CampaignID int64
	Kind       string
	Value      []byte
	Include    bool
}

func (r *CatalogRepository) rules(ctx context.Context, tx pgx.Tx) ([]domain.TargetingRule, error) {
	rows, err := tx.Query(ctx, rulesQuery, domain.StatusActive)
	if err != nil {
		return nil, err
	}
	raw, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (rawRule, error) {
		var rr rawRule
		err := row.Scan(&rr.ID, &rr.CampaignID, &rr.Kind, &rr.Value, &rr.Include)
		return rr, err
	})
	if err != nil {
		return nil, err
	}
	return decodeRules(raw, r.logger)
}

// decodeRules turns rows into typed rules. Rules of a kind the matcher does
// not know are dropped with a warning; a malformed payload of a known kind
// fails the whole load.
func decodeRules(raw []rawRule, logger *slog.Logger) ([]domain.TargetingRule, error) {
	rules := make([]domain.TargetingRule, 0, len(raw))
	for _, rr := range raw {
		cond, err := domain.ParseCondition(rr.Kind, rr.Value)
		if errors.Is(err, domain.ErrUnknownRuleKind) {
			logger.Warn("skipping targeting rule of unknown kind",
				slog.Int64("rule_id", rr.ID),
				slog.Int64("campaign_id", rr.CampaignID),
				slog.String("kind", rr.Kind),
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", rr.ID, err)
		}
		rules = append(rules, domain.TargetingRule{
			ID:         rr.ID,
			CampaignID: rr.CampaignID,
			Include:    rr.Include,
			Condition:  cond,
		})
	}
	return rules, nil
}
