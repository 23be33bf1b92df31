// internal/seed/seed.go
package seed

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unclebandit/creatorhub-backend/internal/model"
)

var (
	firstNames = []string{"Ava", "Ben", "Chloe", "Dami", "Elena", "Felix", "Grace", "Hiro", "Imani", "Jonas", "Kemi", "Liam", "Maya", "Nico", "Olu", "Priya"}
	lastNames  = []string{"Adeyemi", "Brooks", "Chen", "Diaz", "Evans", "Fischer", "Gupta", "Haddad", "Ivanova", "Johnson", "Kim", "Lopez", "Mensah", "Novak"}
	niches     = []string{"fashion", "beauty", "tech", "food", "fitness", "travel", "lifestyle", "gaming"}
	locations  = []string{"Lagos", "Nairobi", "London", "New York", "Berlin", "Toronto", "Mumbai", "Sydney"}
	statuses   = []string{model.CreatorAvailable, model.CreatorAvailable, model.CreatorBusy, model.CreatorUnavailable}
)

// seedNamespace keeps generated ids stable for a given (seed, index).
var seedNamespace = uuid.MustParse("6f1c7c1e-3d2b-4b8e-9a57-2f3c1d7e9b10")

// Creators returns n creators derived only from seed, so two runs with the
// same arguments produce identical rows.
func Creators(n int, seed uint64) []*model.Creator {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*model.Creator, 0, n)

	for i := 0; i < n; i++ {
		first := firstNames[rng.IntN(len(firstNames))]
		last := lastNames[rng.IntN(len(lastNames))]
		handle := fmt.Sprintf("@%s%s%d", strings.ToLower(first), strings.ToLower(last[:1]), i)

		nicheCount := 1 + rng.IntN(2)
		picked := make([]string, 0, nicheCount)
		for _, idx := range rng.Perm(len(niches))[:nicheCount] {
			picked = append(picked, niches[idx])
		}

		// log-uniform between 1K and 10M followers
		followers := int64(1000 * math.Pow(10, rng.Float64()*4))

		out = append(out, &model.Creator{
			ID:             uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("%d/%d", seed, i))).String(),
			Name:           first + " " + last,
			Handle:         handle,
			Platform:       model.CreatorPlatforms[rng.IntN(len(model.CreatorPlatforms))],
			FollowersCount: followers,
			EngagementRate: float64(50+rng.IntN(950)) / 100,
			Niche:          picked,
			Location:       locations[rng.IntN(len(locations))],
			ContactEmail:   strings.TrimPrefix(handle, "@") + "@creators.example.com",
			Bio:            fmt.Sprintf("%s creator sharing %s content.", first, strings.Join(picked, " and ")),
			Status:         statuses[rng.IntN(len(statuses))],
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

// Testimonials is the landing page sample set: some approved, some pending.
func Testimonials() []*model.Testimonial {
	return []*model.Testimonial{
		{Name: "Sarah Johnson", Title: "Marketing Director", Company: "Bloom Cosmetics", Rating: 5, IsApproved: true,
			Content: "We found three perfect creators for our launch in one afternoon."},
		{Name: "Marcus Lee", Title: "Founder", Company: "Trailhead Gear", Rating: 5, IsApproved: true,
			Content: "The caption writer alone saves our team hours every week."},
		{Name: "Amara Okafor", Title: "Content Creator", Company: "", Rating: 4, IsApproved: true,
			Content: "Scheduling to every platform from one place is a game changer."},
		{Name: "Daniel Weber", Title: "Social Media Manager", Company: "Nordlicht Foods", Rating: 4,
			Content: "Campaign tracking is clear and the dashboard is fast."},
		{Name: "Lucia Romero", Title: "Brand Strategist", Company: "Casa Verde", Rating: 5,
			Content: "Our engagement went up after a month of using the content lab."},
	}
}
