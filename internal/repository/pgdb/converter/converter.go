package converter

import (
	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/DRSN-tech/product-ordering/internal/usecase"
)

// ProductConverter преобразует Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []ProductModel) []domain.Product
}

// PriceEntryConverter преобразует записи прайс-листа.
type PriceEntryConverter interface {
	ToEntity(model *PriceEntryModel) *domain.PriceEntry
	ToArrEntity(models []PriceEntryModel) []domain.PriceEntry
}

type OrderConverter interface {
	ToEntity(model *OrderModel) *domain.Order
}

type OrderItemConverter interface {
	ToEntity(model *OrderItemModel) *domain.OrderLineItem
	ToArrEntity(models []OrderItemModel) []domain.OrderLineItem
}

// OutboxEventConverter преобразует OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:        model.ID,
		Name:      model.Name,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
	}
}

func (c *ProductConverterImpl) ToArrEntity(models []ProductModel) []domain.Product {
	res := make([]domain.Product, 0, len(models))
	for i := range models {
		res = append(res, *c.ToEntity(&models[i]))
	}

	return res
}

type PriceEntryConverterImpl struct{}

func NewPriceEntryConverterImpl() *PriceEntryConverterImpl {
	return &PriceEntryConverterImpl{}
}

func (c *PriceEntryConverterImpl) ToEntity(model *PriceEntryModel) *domain.PriceEntry {
	if model == nil {
		return nil
	}

	return domain.NewPriceEntry(model.ID, model.ProductID, model.UnitPrice)
}

func (c *PriceEntryConverterImpl) ToArrEntity(models []PriceEntryModel) []domain.PriceEntry {
	res := make([]domain.PriceEntry, 0, len(models))
	for i := range models {
		res = append(res, *c.ToEntity(&models[i]))
	}

	return res
}

type OrderConverterImpl struct{}

func NewOrderConverterImpl() *OrderConverterImpl {
	return &OrderConverterImpl{}
}

func (c *OrderConverterImpl) ToEntity(model *OrderModel) *domain.Order {
	if model == nil {
		return nil
	}

	return &domain.Order{
		ID:          model.ID,
		OrderNumber: model.OrderNumber,
		Status:      domain.OrderStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ActivatedAt: model.ActivatedAt,
	}
}

type OrderItemConverterImpl struct{}

func NewOrderItemConverterImpl() *OrderItemConverterImpl {
	return &OrderItemConverterImpl{}
}

func (c *OrderItemConverterImpl) ToEntity(model *OrderItemModel) *domain.OrderLineItem {
	if model == nil {
		return nil
	}

	return &domain.OrderLineItem{
		ID:          model.ID,
		OrderID:     model.OrderID,
		ProductID:   model.ProductID,
		ProductName: model.ProductName,
		ListPrice:   model.ListPrice,
		Quantity:    model.Quantity,
		TotalPrice:  model.TotalPrice,
	}
}

func (c *OrderItemConverterImpl) ToArrEntity(models []OrderItemModel) []domain.OrderLineItem {
	res := make([]domain.OrderLineItem, 0, len(models))
	for i := range models {
		res = append(res, *c.ToEntity(&models[i]))
	}

	return res
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl {
	return &OutboxEventConverterImpl{}
}

func (c *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}

	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		OrderID:     entity.OrderID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}

	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		OrderID:     model.OrderID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	res := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		res = append(res, c.ToEntity(model))
	}

	return res
}
