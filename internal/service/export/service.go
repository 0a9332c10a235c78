package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
	"github.com/m04kA/SMC-GymBooking/pkg/ptr"
)

var (
	bookingsHeader = []string{"id", "date", "day", "slot", "time", "client_name", "client_phone", "client_email", "booked_at"}
	clientsHeader  = []string{"id", "name", "phone", "email", "plan", "start_date", "end_date", "status", "days_remaining", "notes"}
)

// Service выгрузка журнала бронирований и клиентов (CSV, iCalendar)
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	clientRepo   ClientRepository
	location     *time.Location
	calendarName string
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис выгрузки
// location - часовой пояс зала, в нём интерпретируется время слотов
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	clientRepo ClientRepository,
	location *time.Location,
	calendarName string,
	logger Logger,
) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		clientRepo:   clientRepo,
		location:     location,
		calendarName: calendarName,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// WriteBookingsCSV пишет бронирования в CSV, возвращает количество строк данных
func (s *Service) WriteBookingsCSV(ctx context.Context, w io.Writer, filter domain.BookingsFilter) (int, error) {
	bookings, slots, err := s.load(ctx, "WriteBookingsCSV", filter)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(bookingsHeader); err != nil {
		return 0, fmt.Errorf("%w: WriteBookingsCSV - write header: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		var slotName, slotTime string
		if slot, ok := slots[b.SlotID]; ok {
			slotName, slotTime = slot.Name, slot.TimeRange()
		}
		record := []string{
			strconv.FormatInt(b.ID, 10),
			b.BookingDate.Format(domain.DateFormat),
			b.BookingDate.Format("Mon"),
			sanitizeCell(slotName),
			slotTime,
			sanitizeCell(b.ClientName),
			sanitizeCell(b.ClientPhone),
			sanitizeCell(ptr.Value(b.ClientEmail)),
			b.CreatedAt.In(s.location).Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("%w: WriteBookingsCSV - write row: %v", ErrInternal, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("%w: WriteBookingsCSV - flush: %v", ErrInternal, err)
	}

	s.logger.Info("WriteBookingsCSV: exported %d bookings", len(bookings))
	return len(bookings), nil
}

// WriteBookingsICS пишет бронирования как календарь: одно событие на бронирование
// Время события = время слота в дату бронирования
func (s *Service) WriteBookingsICS(ctx context.Context, w io.Writer, filter domain.BookingsFilter) (int, error) {
	bookings, slots, err := s.load(ctx, "WriteBookingsICS", filter)
	if err != nil {
		return 0, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//gym-booking//bookings export//EN")
	if s.calendarName != "" {
		cal.SetXWRCalName(s.calendarName)
	}

	stamp := s.timeProvider.Now()
	exported := 0
	for _, b := range bookings {
		slot, ok := slots[b.SlotID]
		if !ok {
			s.logger.Warn("WriteBookingsICS: booking id=%d references unknown slot id=%d, skipped", b.ID, b.SlotID)
			continue
		}

		day := time.Date(b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(), 0, 0, 0, 0, s.location)
		start, errStart := slot.TimeStart.On(day)
		end, errEnd := slot.TimeEnd.On(day)
		if errStart != nil || errEnd != nil {
			s.logger.Warn("WriteBookingsICS: slot id=%d has invalid times, booking id=%d skipped", slot.ID, b.ID)
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("booking-%d@gym-booking", b.ID))
		event.SetDtStampTime(stamp)
		event.SetCreatedTime(b.CreatedAt)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("%s: %s", slot.Name, b.ClientName))
		event.SetDescription(describe(b))
		exported++
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return 0, fmt.Errorf("%w: WriteBookingsICS - write calendar: %v", ErrInternal, err)
	}

	s.logger.Info("WriteBookingsICS: exported %d events", exported)
	return exported, nil
}

// WriteClientsCSV пишет клиентов с вычисленным статусом абонемента
func (s *Service) WriteClientsCSV(ctx context.Context, w io.Writer) (int, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		s.logger.Error("WriteClientsCSV: repository error: %v", err)
		return 0, fmt.Errorf("%w: WriteClientsCSV - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	cw := csv.NewWriter(w)
	if err := cw.Write(clientsHeader); err != nil {
		return 0, fmt.Errorf("%w: WriteClientsCSV - write header: %v", ErrInternal, err)
	}

	for _, c := range clients {
		record := []string{
			strconv.FormatInt(c.ID, 10),
			sanitizeCell(c.Name),
			sanitizeCell(c.Phone),
			sanitizeCell(ptr.Value(c.Email)),
			c.PlanType.Label(),
			c.StartDate.Format(domain.DateFormat),
			c.EndDate.Format(domain.DateFormat),
			string(c.Status(now)),
			strconv.Itoa(c.DaysRemaining(now)),
			sanitizeCell(ptr.Value(c.Notes)),
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("%w: WriteClientsCSV - write row: %v", ErrInternal, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("%w: WriteClientsCSV - flush: %v", ErrInternal, err)
	}

	s.logger.Info("WriteClientsCSV: exported %d clients", len(clients))
	return len(clients), nil
}

func (s *Service) load(ctx context.Context, op string, filter domain.BookingsFilter) ([]*domain.Booking, map[int64]*domain.Slot, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: failed to list bookings: %v", op, err)
		return nil, nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	slots, err := s.slotRepo.List(ctx, false)
	if err != nil {
		s.logger.Error("%s: failed to list slots: %v", op, err)
		return nil, nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	index := make(map[int64]*domain.Slot, len(slots))
	for _, slot := range slots {
		index[slot.ID] = slot
	}
	return bookings, index, nil
}

func describe(b *domain.Booking) string {
	desc := "Phone: " + b.ClientPhone
	if b.HasEmail() {
		desc += "\nEmail: " + *b.ClientEmail
	}
	return desc
}

// sanitizeCell защищает от интерпретации ячейки как формулы в табличных редакторах
// Телефоны вида +91... и -5 не трогаются
func sanitizeCell(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '@', '\t', '\r':
		return "'" + v
	case '+', '-':
		if len(v) == 1 || v[1] < '0' || v[1] > '9' {
			return "'" + v
		}
	}
	return v
}
