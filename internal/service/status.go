package service

import (
	"context"

	pizzav1 "github.com/kube-rca/pizza-observability/api/v1"
	"github.com/kube-rca/pizza-observability/internal/model"
)

const unknownValue = "Unknown"

type orderReader interface {
	Get(ctx context.Context, name, namespace string) (*pizzav1.PizzaOrder, error)
}

// StatusService answers status lookups for PizzaOrder resources.
type StatusService struct {
	reader orderReader
}

// NewStatusService accepts a nil reader; lookups then fail with
// ErrBackendUnavailable.
func NewStatusService(reader orderReader) *StatusService {
	return &StatusService{reader: reader}
}

func (s *StatusService) GetStatus(ctx context.Context, name, namespace string) (*model.OrderStatusResponse, error) {
	if s.reader == nil {
		return nil, ErrBackendUnavailable
	}
	order, err := s.reader.Get(ctx, name, namespace)
	if err != nil {
		return nil, err
	}
	return StatusResponse(order), nil
}

// StatusResponse flattens a PizzaOrder for the status endpoint.
func StatusResponse(order *pizzav1.PizzaOrder) *model.OrderStatusResponse {
	st := order.Status
	resp := &model.OrderStatusResponse{
		Name:      order.Name,
		Status:    st,
		Placed:    st.Placed,
		Delivered: st.Delivered,
		Price:     st.Price,
		OrderID:   st.OrderID,
		Stage:     StageLabel(st),
	}
	if resp.Price == "" {
		resp.Price = unknownValue
	}
	if resp.OrderID == "" {
		resp.OrderID = unknownValue
	}
	if st.Store != nil {
		resp.Store = *st.Store
	}
	if st.Tracker != nil {
		resp.Tracker = *st.Tracker
	}
	return resp
}
