package queue

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PublishJob asks the worker to publish one social post.
type PublishJob struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}

// DecodePublishJob accepts the in-memory value, a decoded JSON object or an
// AMQP message body.
func DecodePublishJob(payload any) (PublishJob, error) {
	var job PublishJob
	switch p := payload.(type) {
	case PublishJob:
		job = p
	case *PublishJob:
		if p == nil {
			return job, fmt.Errorf("nil publish job")
		}
		job = *p
	case []byte:
		if err := json.Unmarshal(p, &job); err != nil {
			return job, fmt.Errorf("decode publish job: %w", err)
		}
	case json.RawMessage:
		if err := json.Unmarshal(p, &job); err != nil {
			return job, fmt.Errorf("decode publish job: %w", err)
		}
	case map[string]any:
		if id, ok := p["post_id"].(string); ok {
			job.PostID = id
		}
		if id, ok := p["user_id"].(string); ok {
			job.UserID = id
		}
	default:
		return job, fmt.Errorf("unexpected payload type %T", payload)
	}
	if strings.TrimSpace(job.PostID) == "" {
		return job, fmt.Errorf("publish job has no post_id")
	}
	return job, nil
}
