package domain

const (
	// NativeIDField — поле, в котором хранилище возвращает собственный идентификатор записи.
	NativeIDField = "_id"
	// ExternalIDField — единственное поле идентификатора, которое видит клиент.
	ExternalIDField = "id"
)

// Document — запись хранилища документов: произвольное отображение ключ-значение.
type Document map[string]any

// Filter — условие выборки документов. Пустой фильтр выбирает всю коллекцию.
type Filter map[string]any

// Clone возвращает поверхностную копию документа.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}

	return out
}
