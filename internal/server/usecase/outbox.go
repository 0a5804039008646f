package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	CartUpdated     OutboxEventType = "cart.updated"
	ProductUpserted OutboxEventType = "product.upserted"
)

// OutboxEvent — запись transactional outbox: событие пишется в БД в одной
// транзакции с изменением данных, воркер публикует его в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid, ключ идемпотентности
	EventType   OutboxEventType
	EntityID    string // id товара или пользователя; ключ партиционирования Kafka
	Payload     []byte // JSON
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// CartUpdatedPayload — тело события cart.updated.
type CartUpdatedPayload struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"qty"`
}

// ProductUpsertedPayload — тело события product.upserted.
type ProductUpsertedPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Cost      int64  `json:"cost"`
}

func NewCartUpdatedEvent(userID, productID string, quantity int) (*OutboxEvent, error) {
	payload, err := json.Marshal(CartUpdatedPayload{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: CartUpdated,
		EntityID:  userID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func NewProductUpsertedEvent(product *ProductInfo) (*OutboxEvent, error) {
	payload, err := json.Marshal(ProductUpsertedPayload{
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Cost:      product.Cost,
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: ProductUpserted,
		EntityID:  product.ID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}, nil
}
