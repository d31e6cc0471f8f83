package activity

import "time"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Event — одна запись ленты действий оператора.
type Event struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`             // "Product created", "Session expired"
	Subject   string    `json:"subject,omitempty"` // SKU, код магазина или текст ошибки
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"at"`
}

func Success(title, subject string) Event {
	return Event{Kind: KindSuccess, Title: title, Subject: subject}
}

func Failure(title string, err error) Event {
	e := Event{Kind: KindError, Title: title}
	if err != nil {
		e.Subject = err.Error()
	}
	return e
}

func Info(title, subject string) Event {
	return Event{Kind: KindInfo, Title: title, Subject: subject}
}
