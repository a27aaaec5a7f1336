// Package messaging 购物车事件的出站实现
package messaging

import (
	"context"

	"github.com/wyfcoding/shopping/internal/cart/domain"
	"github.com/wyfcoding/shopping/pkg/outbox"
)

type outboxPublisher struct {
	manager *outbox.Manager
}

// NewOutboxPublisher 创建基于出站消息表的事件发布器
func NewOutboxPublisher(manager *outbox.Manager) domain.EventPublisher {
	return &outboxPublisher{manager: manager}
}

// Publish 发布一个事件（落库后由后台进程推送）
func (p *outboxPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return p.manager.PublishInTx(ctx, p.manager.DB(), topic, key, event)
}
