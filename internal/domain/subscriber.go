package domain

// SubscriberCollection — коллекция подписчиков рассылки.
const SubscriberCollection = "subscriber"

// Subscriber описывает подписчика рассылки
type Subscriber struct {
	Email string
}

func NewSubscriber(email string) *Subscriber {
	return &Subscriber{Email: email}
}

func (s *Subscriber) ToDocument() Document {
	return Document{"email": s.Email}
}
