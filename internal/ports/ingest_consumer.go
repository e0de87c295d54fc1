package ports

import "context"

// IngestConsumer — фоновый потребитель входящих карточек товаров.
// Run блокируется до отмены ctx или фатальной ошибки; Close освобождает соединения с брокером.
type IngestConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
