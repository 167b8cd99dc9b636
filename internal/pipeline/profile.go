package pipeline

import (
	"fmt"
	"time"

	"github.com/theirongolddev/ridewrap/internal/model"
)

// memberSinceLayout is how the signup date is shown.
const memberSinceLayout = "January 2, 2006"

// BuildProfile derives account metadata. It is independent of the yearly
// aggregation.
func BuildProfile(profile, ratings []model.Record, loc *time.Location) model.Profile {
	p := model.Profile{AvgRating: "N/A"}

	for _, r := range profile {
		raw := r.Get("signup_date", "Signup Date", "created_at")
		if raw == "" {
			continue
		}
		if ts, ok := ParseTimestamp(raw, loc); ok {
			p.MemberSince = ts.Format(memberSinceLayout)
		} else {
			p.MemberSince = raw
		}
		break
	}

	var sum float64
	var n int
	for _, r := range ratings {
		if v := ParseAmount(r.Get("rating")); v > 0 {
			sum += v
			n++
		}
	}
	if n > 0 {
		p.AvgRating = fmt.Sprintf("%.2f", sum/float64(n))
	}
	return p
}
