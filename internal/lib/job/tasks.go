package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the task type for the post-registration welcome
	// email.
	TaskWelcome = "email:welcome"

	// TaskOrderReceipt is the task type for order confirmation emails.
	TaskOrderReceipt = "email:order_receipt"
)

// WelcomeEmailPayload is the JSON payload for TaskWelcome.
type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

// OrderReceiptPayload is the JSON payload for TaskOrderReceipt.
type OrderReceiptPayload struct {
	To      string `json:"to"`
	Name    string `json:"name"`
	OrderID int64  `json:"order_id"`
	Total   string `json:"total"`
}

// NewWelcomeEmailTask builds the welcome email task.
func NewWelcomeEmailTask(to, name string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:   to,
		Name: name,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewOrderReceiptTask builds the order receipt task. Receipts ride the
// low queue: a late receipt beats a delayed critical task.
func NewOrderReceiptTask(to, name string, orderID int64, total string) (*asynq.Task, error) {
	payload, err := json.Marshal(OrderReceiptPayload{
		To:      to,
		Name:    name,
		OrderID: orderID,
		Total:   total,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskOrderReceipt,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
