// internal/controller/query.go
package controller

import (
	"net/http"

	"github.com/unclebandit/creatorhub-backend/internal/filter"
)

// Query-string forms of the list filters. Unknown or blank values mean "no
// constraint".

func CreatorCriteria(r *http.Request) filter.CreatorCriteria {
	q := r.URL.Query()
	return filter.CreatorCriteria{
		Search:       q.Get("search"),
		Platform:     q.Get("platform"),
		Niche:        q.Get("niche"),
		MinFollowers: q.Get("min_followers"),
	}
}

func CampaignCriteria(r *http.Request) filter.CampaignCriteria {
	q := r.URL.Query()
	return filter.CampaignCriteria{Search: q.Get("search"), Status: q.Get("status")}
}

func UserCriteria(r *http.Request) filter.UserCriteria {
	q := r.URL.Query()
	return filter.UserCriteria{Search: q.Get("search"), Tier: q.Get("tier")}
}

func PostCriteria(r *http.Request) filter.PostCriteria {
	q := r.URL.Query()
	return filter.PostCriteria{Status: q.Get("status"), Platform: q.Get("platform")}
}
