package pipeline

import "mesa-decision/internal/core/domain"

// Rerank applies the advertiser diversity cap in one greedy pass over the
// ranked list and truncates the result to the request limit.
type Rerank struct {
	maxPerAdvertiser int
	defaultLimit     int
}

// NewRerank creates the rerank stage. defaultLimit applies to requests
// without a positive limit; a maxPerAdvertiser <= 0 disables the cap.
func NewRerank(maxPerAdvertiser, defaultLimit int) *Rerank {
	return &Rerank{maxPerAdvertiser: maxPerAdvertiser, defaultLimit: defaultLimit}
}

func (r *Rerank) Name() string { return StageRerank }

// Process keeps rank order and returns at most the limit.
func (r *Rerank) Process(req Request, in []domain.Candidate) ([]domain.Candidate, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = r.defaultLimit
	}

	out := make([]domain.Candidate, 0, min(limit, len(in)))
	perAdvertiser := make(map[int64]int)
	for _, c := range in {
		if len(out) >= limit {
			break
		}
		if r.maxPerAdvertiser > 0 && perAdvertiser[c.AdvertiserID] >= r.maxPerAdvertiser {
			continue
		}
		out = append(out, c)
		perAdvertiser[c.AdvertiserID]++
	}
	return out, nil
}
