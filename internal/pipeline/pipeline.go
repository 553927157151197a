// Package pipeline runs the three decision stages for one farmer and
// assembles their results into a single report.
package pipeline

import (
	"time"

	"crop-planner/internal/farmer"
	"crop-planner/internal/finance"
	"crop-planner/internal/ranking"
	"crop-planner/internal/risk"

	"github.com/google/uuid"
)

// Report is the combined output of a pipeline run.
type Report struct {
	ID             string                 `json:"id"`
	GeneratedAt    time.Time              `json:"generatedAt"`
	ReferenceMonth int                    `json:"referenceMonth"`
	Farmer         farmer.Summary         `json:"farmerProfile"`
	Recommendation ranking.Recommendation `json:"recommendations"`
	Risk           risk.Analysis          `json:"riskAnalysis"`
	Finance        finance.Report         `json:"financialPlan"`
}

// TopCrop returns the best ranked crop, if any.
func (r *Report) TopCrop() (ranking.RankedCrop, bool) {
	if len(r.Recommendation.Crops) == 0 {
		return ranking.RankedCrop{}, false
	}
	return r.Recommendation.Crops[0], true
}

type options struct {
	now      func() time.Time
	location *time.Location
	month    int
	newID    func() string
}

type Option func(*options)

// WithClock sets the clock the reference month and timestamp are read from.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLocation sets the time zone the reference month is read in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithMonth pins the reference month (1-12). Zero defers to the clock.
func WithMonth(month int) Option {
	return func(o *options) {
		o.month = month
	}
}

// WithIDGenerator replaces the random report ID source.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// Run ranks crops for a, then analyzes risk and plans finances over the
// same shortlist. The clock is read once.
func Run(a farmer.Attributes, opts ...Option) *Report {
	o := options{
		now:      time.Now,
		location: time.Local,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(&o)
	}

	now := o.now().In(o.location)
	month := o.month
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	rec := ranking.Rank(a, month)
	return &Report{
		ID:             o.newID(),
		GeneratedAt:    now,
		ReferenceMonth: month,
		Farmer:         a.Summary(),
		Recommendation: rec,
		Risk:           risk.Analyze(rec.Crops, a),
		Finance:        finance.Plan(rec.Crops, a, month),
	}
}
