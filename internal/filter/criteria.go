// internal/filter/criteria.go
package filter

import "github.com/unclebandit/creatorhub-backend/internal/model"

// CreatorCriteria is the creator discovery search form.
type CreatorCriteria struct {
	Search       string `json:"search"`
	Platform     string `json:"platform"`
	Niche        string `json:"niche"`
	MinFollowers string `json:"min_followers"`
}

func (c CreatorCriteria) Apply(creators []*model.Creator) []*model.Creator {
	return Apply(creators,
		ContainsFold(c.Search,
			func(cr *model.Creator) string { return cr.Name },
			func(cr *model.Creator) string { return cr.Handle },
		),
		MatchEnum(c.Platform, func(cr *model.Creator) string { return cr.Platform }),
		HasTag(c.Niche, func(cr *model.Creator) []string { return cr.Niche }),
		AtLeast(c.MinFollowers, func(cr *model.Creator) int64 { return cr.FollowersCount }),
	)
}

// UserCriteria filters the admin user list by email or full name and tier.
type UserCriteria struct {
	Search string `json:"search"`
	Tier   string `json:"tier"`
}

func (c UserCriteria) Apply(profiles []*model.Profile) []*model.Profile {
	return Apply(profiles,
		ContainsFold(c.Search,
			func(p *model.Profile) string { return p.Email },
			func(p *model.Profile) string { return p.FullName },
		),
		MatchEnum(c.Tier, func(p *model.Profile) string { return p.SubscriptionTier }),
	)
}

type CampaignCriteria struct {
	Search string `json:"search"`
	Status string `json:"status"`
}

func (c CampaignCriteria) Apply(campaigns []*model.Campaign) []*model.Campaign {
	return Apply(campaigns,
		ContainsFold(c.Search,
			func(cp *model.Campaign) string { return cp.Title },
			func(cp *model.Campaign) string { return cp.Description },
		),
		MatchEnum(c.Status, func(cp *model.Campaign) string { return cp.Status }),
	)
}

type PostCriteria struct {
	Status   string `json:"status"`
	Platform string `json:"platform"`
}

func (c PostCriteria) Apply(posts []*model.SocialPost) []*model.SocialPost {
	return Apply(posts,
		MatchEnum(c.Status, func(p *model.SocialPost) string { return p.Status }),
		HasTag(c.Platform, func(p *model.SocialPost) []string { return p.Platforms }),
	)
}

// TestimonialCriteria selects approved (true), pending (false) or all (nil).
type TestimonialCriteria struct {
	Approved *bool `json:"approved,omitempty"`
}

func (c TestimonialCriteria) Apply(ts []*model.Testimonial) []*model.Testimonial {
	return Apply(ts, Flag(c.Approved, func(t *model.Testimonial) bool { return t.IsApproved }))
}

// SplitTestimonials partitions ts into pending and approved, keeping order.
func SplitTestimonials(ts []*model.Testimonial) (pending, approved []*model.Testimonial) {
	no, yes := false, true
	return TestimonialCriteria{Approved: &no}.Apply(ts), TestimonialCriteria{Approved: &yes}.Apply(ts)
}
