package services

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/preview"
)

// PreviewChannel is the Redis pub/sub channel carrying rendered preview
// documents for one resume. The websocket handler subscribes to it.
func PreviewChannel(resumeID string) string {
	return "editor:" + resumeID + ":preview"
}

type RedisPreviewPublisher struct {
	rdb *redis.Client
}

func NewRedisPreviewPublisher(rdb *redis.Client) *RedisPreviewPublisher {
	return &RedisPreviewPublisher{rdb: rdb}
}

func (p *RedisPreviewPublisher) Publish(ctx context.Context, resumeID string, html string) error {
	return p.rdb.Publish(ctx, PreviewChannel(resumeID), html).Err()
}

func renderPreview(r *models.Resume) (string, error) {
	return preview.RenderHTML(preview.Project(r))
}
