// internal/generator/compose.go
package generator

import (
	"strings"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/templates"
)

const (
	captionHashtags  = 3
	platformHashtags = 2
)

// CaptionRequest is the caption writer form.
type CaptionRequest struct {
	Topic          string `json:"topic"`
	Platform       string `json:"platform"`
	Tone           string `json:"tone"`
	Industry       string `json:"industry"`
	TargetAudience string `json:"target_audience"`
	KeyPoints      string `json:"key_points"`
	CallToAction   string `json:"call_to_action"`
}

func (r CaptionRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return appErrors.NewValidation("topic", "Please enter a topic for your caption")
	}
	return nil
}

// ComposeCaption is deterministic: equal requests give equal items, apart
// from the ID and CreatedAt assigned later by the feed.
func ComposeCaption(t *templates.Set, r CaptionRequest) model.GeneratedItem {
	_, tmpl := t.Caption(r.Platform)
	return model.GeneratedItem{
		Kind:     model.GeneratedCaption,
		Platform: t.PlatformLabel(r.Platform),
		Content: tmpl.Render(map[string]string{
			"topic":           r.Topic,
			"key_points":      r.KeyPoints,
			"target_audience": r.TargetAudience,
			"call_to_action":  r.CallToAction,
		}),
		Hashtags:   Hashtags(t, r.Industry, r.Platform),
		Engagement: "High",
		Tone:       r.Tone,
	}
}

// Hashtags joins the first industry tags with the first platform tags.
func Hashtags(t *templates.Set, industry, platform string) []string {
	base := head(t.IndustryTags(industry), captionHashtags)
	extra := head(t.PlatformTags(platform), platformHashtags)
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

func head(s []string, n int) []string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// ProductRequest is the content lab product form.
type ProductRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	TargetAudience string `json:"target_audience"`
	Tone           string `json:"tone"`
}

func (r ProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return appErrors.NewValidation("name", "Please enter product information")
	}
	return nil
}

func (r ProductRequest) data() map[string]string {
	return map[string]string{
		"name":            r.Name,
		"description":     r.Description,
		"target_audience": r.TargetAudience,
	}
}

func ComposePoster(t *templates.Set, r ProductRequest) model.GeneratedItem {
	tmpl := t.ContentLab.Poster
	return model.GeneratedItem{
		Kind:     model.GeneratedPoster,
		Title:    tmpl.RenderTitle(r.data()),
		Content:  tmpl.Render(r.data()),
		ImageURL: tmpl.ImageURL,
		Tone:     r.Tone,
	}
}

func ComposeProductCaption(t *templates.Set, r ProductRequest) model.GeneratedItem {
	tmpl := t.ContentLab.Caption
	return model.GeneratedItem{
		Kind:    model.GeneratedCaption,
		Title:   tmpl.RenderTitle(r.data()),
		Content: tmpl.Render(r.data()),
		Tone:    r.Tone,
	}
}

// ValidateVideos requires at least one uploaded video asset.
func ValidateVideos(assets []*model.ContentAsset) error {
	for _, a := range assets {
		if a != nil && a.FileType == model.AssetTypeVideo {
			return nil
		}
	}
	return appErrors.NewValidation("video", "Please upload a video file first")
}

func ComposeVideoEdit(t *templates.Set) model.GeneratedItem {
	tmpl := t.ContentLab.Video
	return model.GeneratedItem{
		Kind:    model.GeneratedVideo,
		Title:   tmpl.RenderTitle(nil),
		Content: tmpl.Render(nil),
	}
}
