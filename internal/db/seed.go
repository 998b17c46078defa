package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts a demo catalog: three advertisers with campaigns of every bid
// type, creatives bound to a couple of slots, geo and device rules and a
// week of hourly stats. It does nothing when campaigns already exist.
func Seed(ctx context.Context, db *pgxpool.Pool) (err error) {
	var existing int
	if err = db.QueryRow(ctx, `SELECT count(*) FROM campaigns`).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()
	slots := []string{"home_top", "feed_inline"}

	for a := 1; a <= 3; a++ {
		var advertiserID int64
		err = tx.QueryRow(ctx, `INSERT INTO advertisers (name, company, balance) VALUES ($1, $2, $3) RETURNING id`,
			fmt.Sprintf("Advertiser %d", a), fmt.Sprintf("Company %d", a), 10000).Scan(&advertiserID)
		if err != nil {
			return err
		}

		for bidType := 1; bidType <= 4; bidType++ {
			var campaignID int64
			err = tx.QueryRow(ctx, `INSERT INTO campaigns
(advertiser_id, name, budget_daily, budget_total, bid_type, bid_amount, freq_cap_daily, freq_cap_hourly, start_time, end_time)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id`,
				advertiserID, fmt.Sprintf("Campaign %d-%d", a, bidType),
				500, 10000, bidType, 0.5+float64(r.Intn(400))/100, 5+r.Intn(10), 3,
				now.AddDate(0, 0, -7), now.AddDate(0, 1, 0)).Scan(&campaignID)
			if err != nil {
				return err
			}

			for c := 1; c <= 2; c++ {
				slotIDs := []string{}
				if c == 1 {
					slotIDs = []string{slots[r.Intn(len(slots))]}
				}
				_, err = tx.Exec(ctx, `INSERT INTO creatives
(campaign_id, title, image_url, landing_url, creative_type, width, height, slot_ids, quality_score)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
					campaignID, fmt.Sprintf("Creative %d of campaign %d", c, campaignID),
					fmt.Sprintf("https://example.com/img/%d-%d.png", campaignID, c),
					fmt.Sprintf("https://example.com/landing/%d", campaignID),
					1, 300, 250, slotIDs, 60+r.Intn(40))
				if err != nil {
					return err
				}
			}

			if err = seedRules(ctx, tx, campaignID, a); err != nil {
				return err
			}
			if err = seedStats(ctx, tx, r, campaignID, now); err != nil {
				return err
			}
		}
	}
	return nil
}

type seedRule struct {
	kind    string
	value   map[string][]string
	include bool
}

// seedRules gives each advertiser a different targeting flavour.
func seedRules(ctx context.Context, tx pgx.Tx, campaignID int64, variant int) error {
	var rule seedRule
	switch variant {
	case 1:
		rule = seedRule{"geo", map[string][]string{"countries": {"US", "CA"}}, true}
	case 2:
		rule = seedRule{"device", map[string][]string{"os": {"ios", "android"}}, true}
	default:
		rule = seedRule{"geo", map[string][]string{"countries": {"CN"}}, false}
	}

	raw, err := json.Marshal(rule.value)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO targeting_rules (campaign_id, rule_type, rule_value, is_include) VALUES ($1,$2,$3,$4)`,
		campaignID, rule.kind, raw, rule.include)
	return err
}

func seedStats(ctx context.Context, tx pgx.Tx, r *rand.Rand, campaignID int64, now time.Time) error {
	hour := now.Truncate(time.Hour)
	for h := 1; h <= 7*24; h++ {
		impressions := 50 + r.Intn(200)
		clicks := r.Intn(impressions/20 + 1)
		conversions := r.Intn(clicks/5 + 1)
		_, err := tx.Exec(ctx, `INSERT INTO hourly_stats (campaign_id, stat_hour, impressions, clicks, conversions, spend)
VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT DO NOTHING`,
			campaignID, hour.Add(-time.Duration(h)*time.Hour), impressions, clicks, conversions, float64(impressions)/1000)
		if err != nil {
			return err
		}
	}
	return nil
}
