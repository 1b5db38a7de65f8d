package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
	pkgkafka "github.com/TheDTCStore/dtc-store-mobile/pkg/kafka"
)

// Kafka topics for storefront domain events.
var (
	TopicCartUpdated    = pkgkafka.Topic("cart", "updated")
	TopicCartCleared    = pkgkafka.Topic("cart", "cleared")
	TopicOrderSubmitted = pkgkafka.Topic("order", "submitted")
	TopicOrderPaid      = pkgkafka.Topic("order", "paid")
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// Source identifier for events originating from this service.
const SourceStore = "dtc-store"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	UserID      string         `json:"user_id"`
	Items       []CartItemData `json:"items"`
	ItemCount   int            `json:"item_count"`
	Subtotal    int64          `json:"subtotal"`
	Currency    string         `json:"currency"`
	AllSelected bool           `json:"all_selected"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	ItemID     string `json:"item_id"`
	ProductID  string `json:"product_id"`
	VariantKey string `json:"variant_key"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
	Selected   bool   `json:"selected"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	UserID string `json:"user_id"`
}

// OrderSubmittedData is the payload for an order.submitted event.
type OrderSubmittedData struct {
	OrderID       string `json:"order_id"`
	UserID        string `json:"user_id"`
	ItemCount     int    `json:"item_count"`
	Total         int64  `json:"total"`
	Currency      string `json:"currency"`
	DeliveryID    string `json:"delivery_id"`
	PaymentMethod string `json:"payment_method"`
	CouponCode    string `json:"coupon_code,omitempty"`
}

// OrderPaidData is the payload for an order.paid event.
type OrderPaidData struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	Total   int64  `json:"total"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	items := make([]CartItemData, len(cart.Items))
	for i := range cart.Items {
		item := &cart.Items[i]
		items[i] = CartItemData{
			ItemID:     item.ID,
			ProductID:  item.ProductID,
			VariantKey: item.VariantKey,
			Name:       item.Product.Name,
			UnitPrice:  item.UnitPrice(),
			Quantity:   item.Quantity,
			Selected:   item.Selected,
		}
	}

	data := CartUpdatedData{
		UserID:      cart.UserID,
		Items:       items,
		ItemCount:   cart.ItemCount(),
		Subtotal:    cart.Subtotal(),
		Currency:    cart.Currency,
		AllSelected: cart.AllSelected(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.UserID, AggregateTypeCart, SourceStore, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("user_id", cart.UserID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, userID string) error {
	data := CartClearedData{UserID: userID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, userID, AggregateTypeCart, SourceStore, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("user_id", userID),
	)

	return nil
}

// PublishOrderSubmitted publishes an order.submitted event.
func (p *Producer) PublishOrderSubmitted(ctx context.Context, order *domain.Order) error {
	data := OrderSubmittedData{
		OrderID:       order.ID,
		UserID:        order.UserID,
		ItemCount:     order.ItemCount(),
		Total:         order.Quote.Total,
		Currency:      order.Quote.Currency,
		DeliveryID:    order.DeliveryOption.ID,
		PaymentMethod: order.PaymentMethod,
		CouponCode:    order.CouponCode,
	}

	event, err := pkgkafka.NewEvent(TopicOrderSubmitted, order.ID, AggregateTypeOrder, SourceStore, data)
	if err != nil {
		return fmt.Errorf("create order.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderSubmitted, event); err != nil {
		return fmt.Errorf("publish order.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.submitted event",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
	)

	return nil
}

// PublishOrderPaid publishes an order.paid event.
func (p *Producer) PublishOrderPaid(ctx context.Context, order *domain.Order) error {
	data := OrderPaidData{
		OrderID: order.ID,
		UserID:  order.UserID,
		Total:   order.Quote.Total,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPaid, order.ID, AggregateTypeOrder, SourceStore, data)
	if err != nil {
		return fmt.Errorf("create order.paid event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPaid, event); err != nil {
		return fmt.Errorf("publish order.paid event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.paid event",
		slog.String("order_id", order.ID),
	)

	return nil
}
