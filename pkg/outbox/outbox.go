// Package outbox 提供事务性 Outbox 模式实现：
// 业务事务内落库事件，后台进程轮询并推送到消息队列
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wyfcoding/shopping/pkg/logger"
	"gorm.io/gorm"
)

// 消息状态
const (
	StatusPending   = "PENDING"
	StatusPublished = "PUBLISHED"
)

// Message Outbox 消息记录
type Message struct {
	gorm.Model
	Topic       string     `gorm:"column:topic;type:varchar(128);index;not null"`
	Key         string     `gorm:"column:msg_key;type:varchar(128);not null"`
	Payload     []byte     `gorm:"column:payload;type:blob;not null"`
	Status      string     `gorm:"column:status;type:varchar(16);index;not null;default:PENDING"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (Message) TableName() string { return "outbox_messages" }

// Manager 负责 Outbox 消息的写入与状态流转
type Manager struct {
	db *gorm.DB
}

// NewManager 创建 Outbox 管理器
func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// DB 返回底层数据库句柄，用于非事务场景
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// PublishInTx 在给定事务中写入一条待发送消息，event 序列化为 JSON
func (m *Manager) PublishInTx(ctx context.Context, tx *gorm.DB, topic, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox event: %w", err)
	}

	msg := &Message{
		Topic:   topic,
		Key:     key,
		Payload: payload,
		Status:  StatusPending,
	}
	return tx.WithContext(ctx).Create(msg).Error
}

// FetchPending 拉取待发送消息，按写入顺序
func (m *Manager) FetchPending(ctx context.Context, limit int) ([]Message, error) {
	var msgs []Message
	err := m.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("id ASC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

// MarkPublished 标记消息为已发送
func (m *Manager) MarkPublished(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now()
	return m.db.WithContext(ctx).Model(&Message{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"status": StatusPublished, "published_at": &now}).Error
}

// Pusher 将消息推送到消息队列
type Pusher func(ctx context.Context, topic, key string, payload []byte) error

// Processor 后台轮询器：批量拉取 PENDING 消息并推送
type Processor struct {
	manager   *Manager
	pusher    Pusher
	batchSize int
	interval  time.Duration
	stop      chan struct{}
	done      chan struct{}
}

// NewProcessor 创建轮询器
func NewProcessor(manager *Manager, pusher Pusher, batchSize int, interval time.Duration) *Processor {
	if batchSize <= 0 {
		batchSize = 100
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Processor{
		manager:   manager,
		pusher:    pusher,
		batchSize: batchSize,
		interval:  interval,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start 启动轮询，阻塞直到 Stop 被调用
func (p *Processor) Start() {
	defer close(p.done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.drain(context.Background())
		}
	}
}

// Stop 停止轮询并等待当前批次完成
func (p *Processor) Stop() {
	close(p.stop)
	<-p.done
}

func (p *Processor) drain(ctx context.Context) {
	msgs, err := p.manager.FetchPending(ctx, p.batchSize)
	if err != nil {
		logger.Error(ctx, "Failed to fetch outbox messages", "error", err)
		return
	}
	if len(msgs) == 0 {
		return
	}

	published := make([]uint, 0, len(msgs))
	for _, msg := range msgs {
		if err := p.pusher(ctx, msg.Topic, msg.Key, msg.Payload); err != nil {
			// 保持顺序：推送失败则中断本批次，下一轮重试
			logger.Error(ctx, "Failed to push outbox message",
				"id", msg.ID,
				"topic", msg.Topic,
				"error", err,
			)
			break
		}
		published = append(published, msg.ID)
	}

	if err := p.manager.MarkPublished(ctx, published); err != nil {
		logger.Error(ctx, "Failed to mark outbox messages published", "error", err)
	}
}
