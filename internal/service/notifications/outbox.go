package notifications

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

// Результаты для метрики уведомлений
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
	ResultSkipped = "skipped"
)

// Outbox ограниченная очередь уведомлений с пулом воркеров
// Enqueue никогда не блокирует бронирование: при переполнении уведомление отбрасывается
type Outbox struct {
	sender      Sender
	queue       chan *domain.BookingNotification
	workers     int
	sendTimeout time.Duration
	metrics     Metrics
	logger      Logger

	mu      sync.RWMutex
	started bool
	closed  bool
	wg      sync.WaitGroup
}

// NewOutbox создает очередь; воркеры запускаются через Start
func NewOutbox(sender Sender, queueSize, workers int, sendTimeout time.Duration, metrics Metrics, logger Logger) *Outbox {
	if queueSize <= 0 {
		queueSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	return &Outbox{
		sender:      sender,
		queue:       make(chan *domain.BookingNotification, queueSize),
		workers:     workers,
		sendTimeout: sendTimeout,
		metrics:     metrics,
		logger:      logger,
	}
}

// Start запускает воркеры. Повторный вызов ничего не делает
func (o *Outbox) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.started || o.closed {
		return
	}
	o.started = true

	for i := 0; i < o.workers; i++ {
		o.wg.Add(1)
		go o.worker(i)
	}
	o.logger.Info("Outbox: started %d workers, queue size %d", o.workers, cap(o.queue))
}

// Enqueue ставит уведомление в очередь без ожидания
// Возвращает false, если очередь заполнена или закрыта
func (o *Outbox) Enqueue(n *domain.BookingNotification) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		o.logger.Warn("Enqueue: outbox closed, dropping notification for booking id=%d", n.BookingID)
		o.metrics.ObserveNotification(ResultDropped)
		return false
	}

	select {
	case o.queue <- n:
		return true
	default:
		o.logger.Warn("Enqueue: queue is full, dropping notification for booking id=%d", n.BookingID)
		o.metrics.ObserveNotification(ResultDropped)
		return false
	}
}

// Close перестаёт принимать уведомления и ждёт, пока воркеры разберут очередь
// Если ctx истёк раньше, возвращает ctx.Err(); недоставленные уведомления теряются
func (o *Outbox) Close(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	close(o.queue)
	started := o.started
	o.mu.Unlock()

	if !started {
		if left := len(o.queue); left > 0 {
			o.logger.Warn("Close: outbox was never started, %d notifications lost", left)
		}
		return nil
	}

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		o.logger.Info("Close: outbox drained")
		return nil
	case <-ctx.Done():
		o.logger.Error("Close: drain interrupted: %v", ctx.Err())
		return ctx.Err()
	}
}

func (o *Outbox) worker(id int) {
	defer o.wg.Done()

	for n := range o.queue {
		o.deliver(id, n)
	}
}

func (o *Outbox) deliver(worker int, n *domain.BookingNotification) {
	ctx, cancel := context.WithTimeout(context.Background(), o.sendTimeout)
	defer cancel()

	err := o.sender.SendBookingConfirmation(ctx, n)
	if errors.Is(err, ErrSkipped) {
		o.metrics.ObserveNotification(ResultSkipped)
		return
	}
	if err != nil {
		o.logger.Error("deliver: worker %d failed to send confirmation for booking id=%d: %v", worker, n.BookingID, err)
		o.metrics.ObserveNotification(ResultFailed)
		return
	}
	o.metrics.ObserveNotification(ResultSent)
}

// NopSender используется, когда отправка писем выключена
type NopSender struct {
	Logger Logger
}

// SendBookingConfirmation только фиксирует пропуск
func (s *NopSender) SendBookingConfirmation(_ context.Context, n *domain.BookingNotification) error {
	s.Logger.Info("SendBookingConfirmation: mailer disabled, skipping booking id=%d", n.BookingID)
	return ErrSkipped
}
